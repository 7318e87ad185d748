package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationDiet      NotificationType = "dieta"
	NotificationWorkout   NotificationType = "treino"
	NotificationSeduction NotificationType = "seducao"
)

// NotificationSchedule is a fixed daily broadcast slot.
type NotificationSchedule struct {
	Type   NotificationType
	Hour   int
	Minute int
	Title  string
	Body   string
}

// The three daily engagement broadcasts.
var NotificationSchedules = []NotificationSchedule{
	{
		Type:  NotificationDiet,
		Hour:  8,
		Title: "🥗 Lembrete de Dieta",
		Body:  "Bom dia! Não esqueça de acompanhar suas calorias hoje. Mantenha o foco!",
	},
	{
		Type:  NotificationWorkout,
		Hour:  15,
		Title: "💪 Hora do Treino",
		Body:  "Boa tarde! Está na hora do seu treino. Vamos conquistar seus objetivos!",
	},
	{
		Type:  NotificationSeduction,
		Hour:  20,
		Title: "❤️ Dica de Sedução",
		Body:  "Boa noite! Confira a dica de sedução de hoje e aprimore suas habilidades sociais.",
	},
}

// Notification is one delivered broadcast, polled by clients.
type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Body      string           `json:"body" db:"body"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// NotificationPrefs stores which broadcast types a user wants. All types are
// enabled by default.
type NotificationPrefs struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Diet      bool      `json:"dieta" db:"dieta"`
	Workout   bool      `json:"treino" db:"treino"`
	Seduction bool      `json:"seducao" db:"seducao"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func DefaultNotificationPrefs(userID uuid.UUID) NotificationPrefs {
	return NotificationPrefs{UserID: userID, Diet: true, Workout: true, Seduction: true}
}

// EnabledTypes lists the types the user has opted into.
func (p NotificationPrefs) EnabledTypes() []NotificationType {
	var types []NotificationType
	if p.Diet {
		types = append(types, NotificationDiet)
	}
	if p.Workout {
		types = append(types, NotificationWorkout)
	}
	if p.Seduction {
		types = append(types, NotificationSeduction)
	}
	return types
}
