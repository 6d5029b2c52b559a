package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGeneration(t *testing.T) {
	before := testutil.ToFloat64(generationsTotal.WithLabelValues("crossword", OutcomePartial))
	ObserveGeneration("crossword", OutcomePartial, 3*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(generationsTotal.WithLabelValues("crossword", OutcomePartial)))
}

func TestSessionCompleted(t *testing.T) {
	before := testutil.ToFloat64(sessionsCompleted.WithLabelValues("wordsearch"))
	SessionCompleted("wordsearch")
	SessionCompleted("wordsearch")
	assert.Equal(t, before+2, testutil.ToFloat64(sessionsCompleted.WithLabelValues("wordsearch")))
}

func TestObserveHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/health", "200"))
	ObserveHTTPRequest("GET", "/api/v1/health", 200, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/health", "200")))
}

func TestPanicRecovered(t *testing.T) {
	before := testutil.ToFloat64(panicsRecovered)
	PanicRecovered()
	assert.Equal(t, before+1, testutil.ToFloat64(panicsRecovered))
}
