package studio

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learnfeed-service/internal/infra/source"
)

const testEndpoint = "https://studio.example.com/api/videos"

func newTestClient() *Client {
	cfg := source.ClientConfig{
		BaseURL: "https://studio.example.com",
		Timeout: 5 * time.Second,
		Retry: source.RetryConfig{
			MaxAttempts: 3,
			WaitTime:    100 * time.Millisecond,
			MaxWaitTime: 500 * time.Millisecond,
		},
		CB: source.CBConfig{
			MaxRequests:  5,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.6,
		},
	}
	logger := zap.NewNop()
	client := New(cfg, logger)

	// Activate httpmock for this client's HTTP transport
	httpmock.ActivateNonDefault(client.client.GetClient())

	return client
}

func mockSuccessResponse() Response {
	return Response{
		Videos: []VideoItem{
			{
				ID:    "video-1",
				Title: "Introduction to Calculus: Limits and Derivatives",
				Creator: Creator{
					ID:   "math-masters",
					Name: "Math Masters",
				},
				DurationSeconds: 1122,
				Topics:          []string{"calculus", "mathematics", "derivatives", "limits"},
				ExamRelevant:    true,
				Stats: Stats{
					Views:    245000,
					Likes:    15000,
					Comments: 800,
				},
				UploadedAt: "2024-01-15T10:00:00Z",
			},
			{
				ID:    "short-1",
				Title: "Quick Calculus Tip: Power Rule",
				Creator: Creator{
					ID:   "math-masters",
					Name: "Math Masters",
				},
				DurationSeconds: 59,
				Topics:          []string{"calculus", "quick tip", "derivatives"},
				ShortForm:       true,
				Stats: Stats{
					Views:    125000,
					Likes:    18000,
					Comments: 320,
				},
				UploadedAt: "2024-01-16T12:00:00Z",
			},
		},
		Pagination: Pagination{
			Total:   2,
			Page:    1,
			PerPage: 10,
		},
	}
}

// TestStudio_Fetch_Success tests successful JSON fetch and parse.
func TestStudio_Fetch_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	mockResp := mockSuccessResponse()
	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, mockResp))

	client := newTestClient()
	videos, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, videos, 2)

	// Verify first video
	assert.Equal(t, "studio", videos[0].SourceID)
	assert.Equal(t, "video-1", videos[0].ExternalID)
	assert.Equal(t, "Introduction to Calculus: Limits and Derivatives", videos[0].Title)
	assert.Equal(t, "math-masters", videos[0].CreatorID)
	assert.Equal(t, "Math Masters", videos[0].CreatorName)
	assert.Equal(t, 1122, videos[0].DurationSeconds)
	assert.Equal(t, []string{"calculus", "mathematics", "derivatives", "limits"}, videos[0].Topics)
	assert.False(t, videos[0].ShortForm)
	assert.True(t, videos[0].ExamRelevant)
	assert.Equal(t, 245000, videos[0].Views)
	assert.Equal(t, 15000, videos[0].Likes)
	assert.Equal(t, 800, videos[0].Comments)

	// Verify second video carries the short-form flag
	assert.Equal(t, "short-1", videos[1].ExternalID)
	assert.True(t, videos[1].ShortForm)
}

// TestStudio_Fetch_EmptyResponse tests handling of empty video array.
func TestStudio_Fetch_EmptyResponse(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	emptyResp := Response{
		Videos: []VideoItem{},
		Pagination: Pagination{
			Total:   0,
			Page:    1,
			PerPage: 10,
		},
	}

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, emptyResp))

	client := newTestClient()
	videos, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Empty(t, videos)
}

// TestStudio_Fetch_HTTPError_4xx tests client error handling (4xx).
func TestStudio_Fetch_HTTPError_4xx(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"400 Bad Request", 400},
		{"404 Not Found", 404},
		{"429 Too Many Requests", 429},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			httpmock.RegisterResponder("GET", testEndpoint,
				httpmock.NewStringResponder(tt.statusCode, "Error"))

			client := newTestClient()
			videos, err := client.Fetch(context.Background())

			require.Error(t, err)
			assert.Nil(t, videos)
			assert.Contains(t, err.Error(), fmt.Sprintf("status %d", tt.statusCode))
		})
	}
}

// TestStudio_Fetch_HTTPError_5xx tests server error handling (5xx).
func TestStudio_Fetch_HTTPError_5xx(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"500 Internal Server Error", 500},
		{"502 Bad Gateway", 502},
		{"503 Service Unavailable", 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			httpmock.RegisterResponder("GET", testEndpoint,
				httpmock.NewStringResponder(tt.statusCode, "Server Error"))

			client := newTestClient()
			videos, err := client.Fetch(context.Background())

			require.Error(t, err)
			assert.Nil(t, videos)
			assert.Contains(t, err.Error(), fmt.Sprintf("status %d", tt.statusCode))
		})
	}
}

// TestStudio_Fetch_NetworkError tests network error handling.
func TestStudio_Fetch_NetworkError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewErrorResponder(fmt.Errorf("network error: connection refused")))

	client := newTestClient()
	videos, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.Nil(t, videos)
	assert.Contains(t, err.Error(), "fetching from studio")
}

// TestStudio_Fetch_ContextCancellation tests context cancellation handling.
func TestStudio_Fetch_ContextCancellation(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	// Mock a slow response
	httpmock.RegisterResponder("GET", testEndpoint,
		func(_ *http.Request) (*http.Response, error) {
			time.Sleep(200 * time.Millisecond)

			return httpmock.NewJsonResponse(200, mockSuccessResponse())
		})

	client := newTestClient()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	videos, err := client.Fetch(ctx)

	require.Error(t, err)
	assert.Nil(t, videos)
}

// TestStudio_CircuitBreaker_Opens tests that CB opens after consecutive failures.
func TestStudio_CircuitBreaker_Opens(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	// Mock 500 errors
	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewStringResponder(500, "Internal Server Error"))

	client := newTestClient()

	// Trigger consecutive failures - CB needs FailureRatio >= 0.6 with min 3 requests
	for i := 0; i < 5; i++ {
		_, err := client.Fetch(context.Background())
		require.Error(t, err)
	}

	// CB should be open now - next request should fail immediately
	start := time.Now()
	_, err := client.Fetch(context.Background())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	// Should fail fast (< 100ms) without making HTTP request
	assert.Less(t, elapsed.Milliseconds(), int64(100))
}

// TestStudio_Retry_ExponentialBackoff tests retry mechanism.
func TestStudio_Retry_ExponentialBackoff(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	callCount := 0
	httpmock.RegisterResponder("GET", testEndpoint,
		func(_ *http.Request) (*http.Response, error) {
			callCount++
			if callCount < 3 {
				// Fail first 2 attempts
				return httpmock.NewStringResponse(500, "Server Error"), nil
			}
			// Succeed on 3rd attempt
			return httpmock.NewJsonResponse(200, mockSuccessResponse())
		})

	start := time.Now()
	client := newTestClient()
	videos, err := client.Fetch(context.Background())
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Len(t, videos, 2)
	assert.Equal(t, 3, callCount, "Should retry twice and succeed on 3rd attempt")

	// With exponential backoff: wait1=100ms, wait2=200ms
	assert.GreaterOrEqual(t, elapsed.Milliseconds(), int64(200))
}

// TestStudio_Retry_MaxRetriesExceeded tests behavior when all retries fail.
func TestStudio_Retry_MaxRetriesExceeded(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	callCount := 0
	httpmock.RegisterResponder("GET", testEndpoint,
		func(_ *http.Request) (*http.Response, error) {
			callCount++

			return httpmock.NewStringResponse(500, "Server Error"), nil
		})

	client := newTestClient()
	videos, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.Nil(t, videos)
	// Should make 1 initial request + 3 retries = 4 total calls
	assert.Equal(t, 4, callCount)
}

// TestStudio_Name tests the Name method.
func TestStudio_Name(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	client := newTestClient()
	assert.Equal(t, "studio", client.Name())
}

// TestStudio_Fetch_DateParsing tests uploaded_at date parsing.
func TestStudio_Fetch_DateParsing(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	resp := Response{
		Videos: []VideoItem{
			{
				ID:         "video-1",
				Title:      "Test",
				Creator:    Creator{ID: "c1", Name: "Creator"},
				Stats:      Stats{Views: 100, Likes: 10},
				UploadedAt: "2024-01-15T10:30:00Z",
				Topics:     []string{},
			},
		},
	}

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, resp))

	client := newTestClient()
	videos, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, videos, 1)

	expectedTime, _ := time.Parse(time.RFC3339, "2024-01-15T10:30:00Z")
	assert.Equal(t, expectedTime, videos[0].UploadedAt)
}

// TestStudio_Fetch_InvalidDateFormat tests handling of invalid date format.
func TestStudio_Fetch_InvalidDateFormat(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	resp := Response{
		Videos: []VideoItem{
			{
				ID:         "video-1",
				Title:      "Test",
				Creator:    Creator{ID: "c1", Name: "Creator"},
				Stats:      Stats{Views: 100, Likes: 10},
				UploadedAt: "invalid-date", // Invalid date format
				Topics:     []string{},
			},
		},
	}

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, resp))

	client := newTestClient()
	videos, err := client.Fetch(context.Background())

	// Should still succeed but with zero time
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.True(t, videos[0].UploadedAt.IsZero())
}

// TestStudio_Fetch_HTTPCallCount verifies httpmock call tracking.
func TestStudio_Fetch_HTTPCallCount(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, mockSuccessResponse()))

	client := newTestClient()
	_, err := client.Fetch(context.Background())

	require.NoError(t, err)
	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["GET "+testEndpoint])
}
