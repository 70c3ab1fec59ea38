package models

// Account is the server-side owner of notes. Hash is the only credential.
type Account struct {
	ID   int64  `json:"id"`
	Hash string `json:"hash"`
}

type Note struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// NewUserNoteRequest is the body of POST /new-user-note.
type NewUserNoteRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type NewUserNoteResponse struct {
	ID   int64  `json:"id"`
	Hash string `json:"hash"`
}

// AddNoteRequest is the body of POST /notes.
type AddNoteRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Hash  string `json:"hash"`
}

type AddNoteResponse struct {
	ID int64 `json:"id"`
}

type NotesResponse struct {
	Notes []Note `json:"notes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
