package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// IdentityDocumentRequest carries national identity document of the user.
type IdentityDocumentRequest struct {
	DNI          string `json:"dni"`
	DocumentPath string `json:"dni_document_path"`
}
