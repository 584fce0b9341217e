package chatbot

import "math/rand/v2"

// ClusterID is a fallback-model cluster with canned replies.
type ClusterID int

const (
	ClusterGreeting ClusterID = iota
	ClusterFarewell
	ClusterIdentity
	ClusterHelp
	ClusterThanks
	ClusterComplaint
)

// DefaultReply answers cluster ids with no entry in the table.
const DefaultReply = "No estoy seguro de entender 😅, pero puedo intentarlo otra vez."

// EmptyMessageReply answers blank input.
const EmptyMessageReply = "Por favor escribe algo 😅"

var responses = map[ClusterID][]string{
	ClusterGreeting:  {"¡Hola! 😊 ¿Cómo estás?", "¡Qué gusto saludarte!", "¿En qué puedo ayudarte hoy?"},
	ClusterFarewell:  {"Hasta luego 👋", "Nos vemos pronto.", "¡Cuídate! 😊"},
	ClusterIdentity:  {"Soy un asistente virtual creado para ayudarte 💻", "Pregúntame lo que quieras 😉"},
	ClusterHelp:      {"¡Claro! ¿En qué puedo ayudarte?", "Cuéntame tu problema 🤖"},
	ClusterThanks:    {"¡Gracias a ti! ❤️", "Me alegra ser de ayuda 😄"},
	ClusterComplaint: {"Lamento eso 😔, puedo intentarlo nuevamente.", "Parece que algo no salió bien 😅"},
}

// Replies returns the candidate replies for id, or only DefaultReply when
// the id is not in the table. The returned slice is a copy.
func Replies(id ClusterID) []string {
	candidates, ok := responses[id]
	if !ok {
		return []string{DefaultReply}
	}
	return append([]string(nil), candidates...)
}

// Picker chooses an index in [0, n).
type Picker func(n int) int

// RandomPicker picks uniformly at random.
func RandomPicker(n int) int {
	return rand.IntN(n)
}

// PickReply chooses one of the replies for id.
func PickReply(id ClusterID, pick Picker) string {
	candidates, ok := responses[id]
	if !ok {
		return DefaultReply
	}
	if pick == nil {
		pick = RandomPicker
	}
	return candidates[pick(len(candidates))]
}
