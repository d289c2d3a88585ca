package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/Voronoix/pkg/engine"
	"github.com/lintang-b-s/Voronoix/pkg/http/usecases"
	"github.com/lintang-b-s/Voronoix/pkg/tessellation"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, useRateLimit bool) (*httptest.Server, *API) {
	t.Helper()
	eng, err := engine.NewEngine(engine.Config{
		GridSize: 8,
		Sources: []tessellation.SourceSpec{
			tessellation.NewSourceSpec(0, 0, 1),
			tessellation.NewSourceSpec(7, 7, 1),
			tessellation.NewSourceSpec(0, 7, 2),
		},
		CentroidWorkers: 2,
	}, zap.NewNop())
	require.NoError(t, err)

	service, err := usecases.NewTessellationService(zap.NewNop(), eng, 8)
	require.NoError(t, err)

	api := NewAPI(zap.NewNop())
	service.OnPass(api.Hub().PassListener())

	srv := httptest.NewServer(api.Handler(service, useRateLimit))
	t.Cleanup(func() {
		api.Hub().RemoveAllUser()
		srv.Close()
	})
	return srv, api
}

type passesBody struct {
	Data []struct {
		Pass           int   `json:"pass"`
		Labeled        int   `json:"labeled"`
		Unassigned     int   `json:"unassigned"`
		CellsPerSource []int `json:"cells_per_source"`
	} `json:"data"`
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRunPasses(t *testing.T) {
	srv, _ := newTestServer(t, false)

	resp := post(t, srv.URL+"/api/passes?count=2", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	var body passesBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 2)
	for i, p := range body.Data {
		assert.Equal(t, i+1, p.Pass)
		assert.Equal(t, 64, p.Labeled)
		assert.Equal(t, 0, p.Unassigned)
		assert.Len(t, p.CellsPerSource, 3)
	}

	resp = post(t, srv.URL+"/api/passes", "application/json", `{"count": 1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = passesBody{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, 3, body.Data[0].Pass)
}

func TestRunPassesValidation(t *testing.T) {
	srv, _ := newTestServer(t, false)

	tests := []struct {
		name  string
		query string
	}{
		{name: "zero", query: "count=0"},
		{name: "negative", query: "count=-3"},
		{name: "too many", query: "count=1001"},
		{name: "not a number", query: "count=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/api/passes?"+tt.query, "", "")
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body errorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, http.StatusText(http.StatusBadRequest), body.Error.Code)
		})
	}

	resp := post(t, srv.URL+"/api/passes", "text/plain", "count=1")
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestGridAndSources(t *testing.T) {
	srv, _ := newTestServer(t, false)

	resp := get(t, srv.URL+"/api/grid")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var grid struct {
		Data struct {
			Pass   int     `json:"pass"`
			Size   int     `json:"size"`
			Labels [][]int `json:"labels"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&grid))
	assert.Equal(t, 0, grid.Data.Pass)
	assert.Equal(t, 8, grid.Data.Size)
	assert.Equal(t, -1, grid.Data.Labels[3][3])

	post(t, srv.URL+"/api/passes?count=1", "", "")

	resp = get(t, srv.URL+"/api/grid")
	grid.Data.Labels = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&grid))
	assert.Equal(t, 1, grid.Data.Pass)
	assert.Equal(t, 0, grid.Data.Labels[0][0])
	assert.Equal(t, 1, grid.Data.Labels[7][7])

	resp = get(t, srv.URL+"/api/sources")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sources struct {
		Data []struct {
			ID     int     `json:"id"`
			Weight float64 `json:"weight"`
			Cost   float64 `json:"cost"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sources))
	require.Len(t, sources.Data, 3)
	assert.Equal(t, 2.0, sources.Data[2].Weight)
	for _, s := range sources.Data {
		assert.Greater(t, s.Cost, 0.0)
	}

	resp = get(t, srv.URL+"/api/history")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history passesBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	assert.Len(t, history.Data, 1)
}

func TestRenderGrid(t *testing.T) {
	srv, _ := newTestServer(t, false)

	resp := get(t, srv.URL+"/api/grid/png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	post(t, srv.URL+"/api/passes?count=1", "", "")

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{format: "png", contentType: "image/png", prefix: "\x89PNG"},
		{format: "csv", contentType: "text/csv", prefix: "0,"},
		{format: "html", contentType: "text/html; charset=utf-8", prefix: ""},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := get(t, srv.URL+"/api/grid/"+tt.format)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
			data, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), tt.prefix))
		})
	}

	resp = get(t, srv.URL+"/api/grid/gif")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHeartbeat(t *testing.T) {
	srv, _ := newTestServer(t, false)
	resp := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	viper.Set("RATE_LIMIT_RPS", 0.001)
	viper.Set("RATE_LIMIT_BURST", 1)
	t.Cleanup(func() {
		viper.Set("RATE_LIMIT_RPS", nil)
		viper.Set("RATE_LIMIT_BURST", nil)
	})
	srv, _ := newTestServer(t, true)

	assert.Equal(t, http.StatusOK, get(t, srv.URL+"/api/sources").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, get(t, srv.URL+"/api/sources").StatusCode)
}

func TestWebsocketReceivesPasses(t *testing.T) {
	srv, api := newTestServer(t, false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, br, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return api.Hub().Size() == 1 }, 2*time.Second, 10*time.Millisecond)

	post(t, srv.URL+"/api/passes?count=1", "", "")

	var rw io.ReadWriter = conn
	if br != nil {
		rw = struct {
			io.Reader
			io.Writer
		}{br, conn}
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	msg, err := wsutil.ReadServerText(rw)
	require.NoError(t, err)

	var body struct {
		Data struct {
			Pass    int `json:"pass"`
			Labeled int `json:"labeled"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg, &body))
	assert.Equal(t, 1, body.Data.Pass)
	assert.Equal(t, 64, body.Data.Labeled)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return api.Hub().Size() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestNearestSources(t *testing.T) {
	srv, _ := newTestServer(t, false)

	type nearest struct {
		Source   int `json:"source"`
		Distance int `json:"distance"`
		Seed     struct {
			Row int `json:"row"`
			Col int `json:"col"`
		} `json:"seed"`
	}

	tests := []struct {
		name      string
		query     string
		wantIDs   []int
		wantDists []int
	}{
		// (0,7) at 3, (7,7) at 6, (0,0) at 8.
		{name: "distinct distances", query: "row=2&col=6&k=2", wantIDs: []int{2, 1}, wantDists: []int{3, 6}},
		// (0,0) and (7,7) are both 7 away, the lower id wins.
		{name: "tie goes to lower id", query: "row=1&col=6&k=2", wantIDs: []int{2, 0}, wantDists: []int{2, 7}},
		{name: "k above source count", query: "row=2&col=6&k=5", wantIDs: []int{2, 1, 0}, wantDists: []int{3, 6, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, srv.URL+"/api/sources/nearest?"+tt.query)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var body struct {
				Data []nearest `json:"data"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			ids := make([]int, len(body.Data))
			dists := make([]int, len(body.Data))
			for i, d := range body.Data {
				ids[i] = d.Source
				dists[i] = d.Distance
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantDists, dists)
			assert.Equal(t, 7, body.Data[0].Seed.Col)
		})
	}

	for _, q := range []string{"row=9&col=0", "row=1&col=1&k=0", "row=a&col=1", "col=1"} {
		resp := get(t, srv.URL+"/api/sources/nearest?"+q)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}
