package roomhandler

type RoomSummary struct {
	RoomID    string `json:"room_id"    example:"lobby"`
	UserCount int    `json:"user_count" example:"3"`
} // @name RoomSummary

type RoomDetail struct {
	RoomID    string   `json:"room_id"    example:"lobby"`
	UserCount int      `json:"user_count" example:"2"`
	Users     []string `json:"users"`
} // @name RoomDetail

type ErrorResponse struct {
	Error string `json:"error"`
} // @name ErrorResponse
