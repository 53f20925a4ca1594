package client

import (
	"fmt"
	"net/http"
)

// ApiError carries the request and response context of a non-2xx answer
// from an external API.
type ApiError struct {
	Method string
	Url    string

	StatusCode int
	StatusText string
	RespBody   string
}

func NewApiError(req *http.Request, resp *http.Response, respBody string) *ApiError {
	err := ApiError{}
	if req != nil {
		err.Method = req.Method
		err.Url = req.URL.String()
	}
	if resp != nil {
		err.StatusCode = resp.StatusCode
		err.StatusText = resp.Status
		err.RespBody = respBody
	}
	return &err
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("api error: %s %s, status: %s, body: %s", e.Method, e.Url, e.StatusText, e.RespBody)
}

func StatusIsSuccess(status int) bool {
	return status >= 200 && status < 300
}
