package model

import "ruang/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldColor       = "color"
	FieldImage       = "image"

	// DefaultColor is the display hint applied when a room is created
	// without an explicit color.
	DefaultColor = "#3B82F6"
)

type Room struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Color       string `db:"color"`
	Image       string `db:"image"`
	model.Metadata
}
