package catalog

import (
	"time"

	"pricewatch-engine/internal/domain"
)

func budget(v float64) *float64 { return &v }

// SampleConsultations is the fixed demo data set for the consultations
// dashboard. Deadlines are relative to now so the urgency tab always has
// something to show.
func SampleConsultations(now time.Time) []domain.Consultation {
	day := 24 * time.Hour
	return []domain.Consultation{
		{
			ID:        "1",
			Reference: "AO-2026-001",
			Title:     "Fourniture et installation de panneaux solaires pour les bâtiments administratifs",
			Organisme: "Ministère de l'Énergie",
			Budget:    budget(48_000_000),
			Deadline:  now.Add(5 * day),
			Status:    domain.StatusNouveau,
			Tags:      []string{"Énergie", "Infrastructure", "Développement durable"},
			CreatedAt: now.Add(-1 * day),
			Category:  "Travaux",
		},
		{
			ID:        "2",
			Reference: "AO-2026-002",
			Title:     "Audit et modernisation du système d'information RH",
			Organisme: "ONEE",
			Budget:    budget(760_000),
			Deadline:  now.Add(48 * time.Hour),
			Status:    domain.StatusEnCours,
			Tags:      []string{"IT", "Audit"},
			CreatedAt: now.Add(-3 * day),
			Category:  "Services",
		},
		{
			ID:        "3",
			Reference: "AO-2026-003",
			Title:     "Maintenance des équipements médicaux — CHU Hassan II",
			Organisme: "CHU Hassan II",
			Budget:    nil,
			Deadline:  now.Add(14 * day),
			Status:    domain.StatusNouveau,
			Tags:      []string{"Santé", "Maintenance"},
			CreatedAt: now.Add(-2 * day),
			Category:  "Services",
		},
		{
			ID:        "4",
			Reference: "AO-2026-004",
			Title:     "Construction d'un centre de formation professionnelle à Tanger",
			Organisme: "OFPPT",
			Budget:    budget(25_000_000),
			Deadline:  now.Add(30 * day),
			Status:    domain.StatusNouveau,
			Tags:      []string{"Construction", "Formation"},
			CreatedAt: now.Add(-1 * day),
			Category:  "Travaux",
		},
		{
			ID:        "5",
			Reference: "AO-2026-005",
			Title:     "Acquisition de véhicules utilitaires pour la collecte des déchets",
			Organisme: "Commune de Casablanca",
			Budget:    budget(3_200_000),
			Deadline:  now.Add(10 * day),
			Status:    domain.StatusEnCours,
			Tags:      []string{"Transport", "Environnement"},
			CreatedAt: now.Add(-5 * day),
			Category:  "Fournitures",
		},
		{
			ID:        "6",
			Reference: "AO-2026-006",
			Title:     "Étude d'impact environnemental — Zone industrielle Kénitra",
			Organisme: "Agence de Développement",
			Budget:    budget(450_000),
			Deadline:  now.Add(20 * day),
			Status:    domain.StatusNouveau,
			Tags:      []string{"Environnement"},
			CreatedAt: now.Add(-1 * day),
			Category:  "Services",
		},
		{
			ID:        "7",
			Reference: "AO-2026-007",
			Title:     "Fourniture de matériel informatique pour les écoles rurales",
			Organisme: "Ministère de l'Éducation",
			Budget:    budget(12_500_000),
			Deadline:  now.Add(2 * day),
			Status:    domain.StatusEnCours,
			Tags:      []string{"IT", "Éducation"},
			CreatedAt: now.Add(-7 * day),
			Category:  "Fournitures",
		},
		{
			ID:        "8",
			Reference: "AO-2026-008",
			Title:     "Réhabilitation du réseau d'assainissement — Quartier Hay Mohammadi",
			Organisme: "Lydec",
			Budget:    budget(8_700_000),
			Deadline:  now.Add(25 * day),
			Status:    domain.StatusNouveau,
			Tags:      []string{"Infrastructure"},
			CreatedAt: now.Add(-4 * day),
			Category:  "Travaux",
		},
	}
}
