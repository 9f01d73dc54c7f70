package f1data

import "encoding/json"

// openF1Meeting is the subset of an OpenF1 meeting needed to locate a round. The raw record is
// kept so it can be forwarded downstream untouched.
type openF1Meeting struct {
	MeetingKey  int    `json:"meeting_key"`
	MeetingName string `json:"meeting_name"`
	raw         json.RawMessage
}

// openF1Session is the subset of an OpenF1 session needed to fetch its records.
type openF1Session struct {
	SessionKey  int    `json:"session_key"`
	SessionName string `json:"session_name"`
	raw         json.RawMessage
}
