package config

// Persona is one of the fixed sender identities the workflow knows how to
// decode. Name is the display form sent as the personaMap workflow variable.
type Persona struct {
	ID          string
	Name        string
	Description string
}

var Personas = []Persona{
	{
		ID:          "boss",
		Name:        "暴躁老板",
		Description: "阴阳怪气的领导",
	},
	{
		ID:          "colleague",
		Name:        "甩锅同事",
		Description: "踢皮球专业户",
	},
	{
		ID:          "client",
		Name:        "刁钻甲方",
		Description: "要五彩斑斓的黑",
	},
}

func GetPersona(id string) *Persona {
	for _, p := range Personas {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

// PersonaName maps a persona id to its display name, passing unknown ids
// through unchanged so the workflow still receives something usable.
func PersonaName(id string) string {
	if p := GetPersona(id); p != nil {
		return p.Name
	}
	return id
}

// Fire level selects how assertive the suggested reply should be.
const (
	MinFireLevel = 1
	MaxFireLevel = 3
)

var FireLevelLabels = map[int]string{
	1: "委婉",
	2: "不卑不亢",
	3: "正面刚",
}
