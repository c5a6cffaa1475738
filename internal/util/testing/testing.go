package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type RequestOptions struct {
	Method         string
	URL            string
	Token          string
	Body           any
	ExpectedStatus int
}

type Response struct {
	Code int
	Body []byte
}

func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions) Response {
	t.Helper()

	var bodyReader *bytes.Reader

	switch body := options.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(body))
	default:
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(options.Method, options.URL, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if options.Token != "" {
		req.Header.Set("Authorization", options.Token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if options.ExpectedStatus != 0 {
		assert.Equal(
			t,
			options.ExpectedStatus,
			w.Code,
			"unexpected status for %s %s: %s",
			options.Method,
			options.URL,
			w.Body.String(),
		)
	}

	return Response{Code: w.Code, Body: w.Body.Bytes()}
}

func MakeGetRequest(t *testing.T, router *gin.Engine, url, token string, expectedStatus int) Response {
	t.Helper()
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodGet,
		URL:            url,
		Token:          token,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url, token string,
	body any,
	expectedStatus int,
) Response {
	t.Helper()
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPost,
		URL:            url,
		Token:          token,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	url, token string,
	body any,
	expectedStatus int,
) Response {
	t.Helper()
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPut,
		URL:            url,
		Token:          token,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
}

func MakePatchRequest(
	t *testing.T,
	router *gin.Engine,
	url, token string,
	body any,
	expectedStatus int,
) Response {
	t.Helper()
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPatch,
		URL:            url,
		Token:          token,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
}

func MakeDeleteRequest(t *testing.T, router *gin.Engine, url, token string, expectedStatus int) Response {
	t.Helper()
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodDelete,
		URL:            url,
		Token:          token,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, token string,
	expectedStatus int,
	target any,
) {
	t.Helper()
	resp := MakeGetRequest(t, router, url, token, expectedStatus)
	unmarshalResponse(t, resp, target)
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, token string,
	body any,
	expectedStatus int,
	target any,
) {
	t.Helper()
	resp := MakePostRequest(t, router, url, token, body, expectedStatus)
	unmarshalResponse(t, resp, target)
}

func unmarshalResponse(t *testing.T, resp Response, target any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body, target); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", string(resp.Body), err)
	}
}
