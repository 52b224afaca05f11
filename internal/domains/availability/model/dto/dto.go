package dto

// CalendarDay is one dated cell in the month grid. RoomIDs holds the rooms
// with at least one booking that day, deduplicated, for indicator dots.
type CalendarDay struct {
	Date    string   `json:"date"`
	Day     int      `json:"day"`
	RoomIDs []string `json:"room_ids"`
}

// CalendarResponse lays out a Monday-first month grid: Padding leading blank
// cells, then one CalendarDay per day of the month. Trailing cells are absent.
type CalendarResponse struct {
	Year    int           `json:"year"`
	Month   int           `json:"month"`
	Padding int           `json:"padding"`
	Days    []CalendarDay `json:"days"`
}

type RoomStatusResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Status string `json:"status"`
}

type GetRoomStatusesResponse struct {
	Date  string               `json:"date"`
	Rooms []RoomStatusResponse `json:"rooms"`
}
