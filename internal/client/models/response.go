package models

// CustomHTTPResponse is the generic backend envelope returned by operations
// whose payload is not a User (password reset, delete) and by every error.
type CustomHTTPResponse struct {
	HTTPStatusCode int       `json:"httpStatusCode"`
	HTTPStatus     string    `json:"httpStatus"`
	Reason         string    `json:"reason"`
	Message        string    `json:"message"`
	TimeStamp      Timestamp `json:"timeStamp"`
}
