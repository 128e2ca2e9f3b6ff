package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiasleandrokruk/promptrelay/internal/domain/quote"
)

func TestQuoteHandler_Random(t *testing.T) {
	t.Parallel()

	pool, err := quote.NewPool([]string{"q1", "q2", "q3", "q4", "q5"})
	require.NoError(t, err)
	h := NewQuoteHandler(pool)

	counts := map[string]int{}
	const calls = 1000
	for i := 0; i < calls; i++ {
		rr := httptest.NewRecorder()
		h.Random(rr, httptest.NewRequest(http.MethodGet, "/api/quote", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		counts[body["quote"]]++
	}

	require.Len(t, counts, 5)
	for q, n := range counts {
		assert.InDelta(t, calls/5, n, 80, "quote %q observed %d times", q, n)
	}
}
