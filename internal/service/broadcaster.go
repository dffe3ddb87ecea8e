package service

// Event types pushed to a user's WebSocket feed
const (
	EventPredictionCreated  = "prediction_created"
	EventPredictionDeleted  = "prediction_deleted"
	EventPredictionsCleared = "predictions_cleared"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToUser(userID string, msgType string, payload interface{})
}
