package shared

// Asynq task types and queues
const (
	TypeDeleteStorageObject = "storage:delete_object"

	QueueStorage = "storage"
)

// DeleteStorageObjectPayload carries the object key of an image whose
// owning record was deleted or whose image was replaced.
type DeleteStorageObjectPayload struct {
	Key string `json:"key"`
}
