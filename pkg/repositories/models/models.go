package models

type User struct {
	ID          uint64 `json:"id"`
	ExternalUID string `json:"external_uid,omitempty"`
}
