// Package dify is the client for the remote Dify workflow app: one multipart
// file upload endpoint and one blocking workflow run endpoint, both
// authorized with a static bearer key and correlated by the anonymous client
// id.
package dify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	apiKey     string
	uploadHTTP *http.Client
	runHTTP    *http.Client
}

// NewClient builds a client with separate timeouts for the two calls: the
// blocking workflow run legitimately takes much longer than an upload.
func NewClient(baseURL, apiKey string, uploadTimeout, runTimeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		uploadHTTP: &http.Client{Timeout: uploadTimeout},
		runHTTP:    &http.Client{Timeout: runTimeout},
	}
}

// FileRef is the remote-assigned handle for an uploaded attachment.
type FileRef struct {
	ID string `json:"id"`
}

// FileDescriptor is the attachment entry sent along with a workflow run.
type FileDescriptor struct {
	Type           string `json:"type"`
	TransferMethod string `json:"transfer_method"`
	UploadFileID   string `json:"upload_file_id"`
}

// ImageFile describes an already-uploaded image by reference.
func ImageFile(ref FileRef) FileDescriptor {
	return FileDescriptor{
		Type:           "image",
		TransferMethod: "local_file",
		UploadFileID:   ref.ID,
	}
}

// RunInput carries the workflow variables for one run.
type RunInput struct {
	PersonaName string
	FireLevel   int
	Text        string
}

// UploadFile posts an image to /files/upload and returns the reference the
// workflow run will name. Failures come back as *UploadError.
func (c *Client) UploadFile(ctx context.Context, filename string, data []byte, user string) (FileRef, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return FileRef{}, &UploadError{Err: err}
	}
	if _, err := fw.Write(data); err != nil {
		return FileRef{}, &UploadError{Err: err}
	}
	if err := w.WriteField("user", user); err != nil {
		return FileRef{}, &UploadError{Err: err}
	}
	if err := w.Close(); err != nil {
		return FileRef{}, &UploadError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files/upload", &buf)
	if err != nil {
		return FileRef{}, &UploadError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.uploadHTTP.Do(req)
	if err != nil {
		return FileRef{}, &UploadError{Err: fmt.Errorf("upload request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return FileRef{}, &UploadError{
			Status:  resp.StatusCode,
			Message: remoteMessage(body, resp.StatusCode, "upload"),
		}
	}

	var ref FileRef
	if err := json.Unmarshal(body, &ref); err != nil {
		return FileRef{}, &UploadError{Err: fmt.Errorf("malformed upload response: %w", err)}
	}
	if ref.ID == "" {
		return FileRef{}, &UploadError{Message: "upload response carried no file id"}
	}

	return ref, nil
}

type runRequest struct {
	Inputs       map[string]any   `json:"inputs"`
	Files        []FileDescriptor `json:"files"`
	ResponseMode string           `json:"response_mode"`
	User         string           `json:"user"`
}

type runResponse struct {
	Data struct {
		Outputs json.RawMessage `json:"outputs"`
	} `json:"data"`
}

// RunWorkflow starts a blocking workflow run and returns the primary text of
// its outputs. The call does not return until the run has fully completed.
// Failures come back as *WorkflowError.
func (c *Client) RunWorkflow(ctx context.Context, in RunInput, files []FileDescriptor, user string) (string, error) {
	text := in.Text
	if text == "" {
		// The workflow rejects empty variables; a single space passes.
		text = " "
	}
	if files == nil {
		files = []FileDescriptor{}
	}

	payload := runRequest{
		Inputs: map[string]any{
			"personaMap": in.PersonaName,
			"fireLevel":  strconv.Itoa(in.FireLevel),
			"text":       text,
			// The workflow maps its files variable from inputs, so the
			// descriptors ride along here as well as at the top level.
			"files": files,
		},
		Files:        files,
		ResponseMode: "blocking",
		User:         user,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &WorkflowError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/workflows/run", bytes.NewReader(body))
	if err != nil {
		return "", &WorkflowError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.runHTTP.Do(req)
	if err != nil {
		return "", &WorkflowError{Err: fmt.Errorf("workflow request failed: %w", err)}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &WorkflowError{
			Status:  resp.StatusCode,
			Message: remoteMessage(respBody, resp.StatusCode, "workflow"),
		}
	}

	var run runResponse
	if err := json.Unmarshal(respBody, &run); err != nil {
		return "", &WorkflowError{Err: fmt.Errorf("malformed workflow response: %w", err)}
	}

	return ExtractOutput(run.Data.Outputs), nil
}

// Ping checks that the remote app is reachable with the configured key. Any
// HTTP answer below 500 counts as connected; 401 singles out a bad key.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/parameters", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.uploadHTTP.Do(req)
	if err != nil {
		return fmt.Errorf("cannot connect to dify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("invalid API key")
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("dify error: status %d", resp.StatusCode)
	}

	return nil
}
