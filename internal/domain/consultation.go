package domain

import "time"

type Status string

const (
	StatusNouveau  Status = "nouveau"
	StatusEnCours  Status = "en_cours"
	StatusCloture  Status = "cloture"
	StatusAttribue Status = "attribue"
)

func StatusLabel(s Status) string {
	switch s {
	case StatusNouveau:
		return "Nouveau"
	case StatusEnCours:
		return "En cours"
	case StatusCloture:
		return "Clôturé"
	case StatusAttribue:
		return "Attribué"
	default:
		return string(s)
	}
}

// Consultation is a tender record. Budget nil means "unknown", which is
// not the same thing as a budget of 0.
type Consultation struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference"`
	Title     string    `json:"title"`
	Organisme string    `json:"organisme"`
	Budget    *float64  `json:"budget"`
	Deadline  time.Time `json:"deadline"`
	Status    Status    `json:"status"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	Category  string    `json:"category"`
}
