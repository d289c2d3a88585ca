package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/Voronoix/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/Voronoix/pkg/http/usecases"
	"go.uber.org/zap"
)

type tessellationAPI struct {
	service TessellationService
	log     *zap.Logger
}

func New(service TessellationService, log *zap.Logger) *tessellationAPI {
	return &tessellationAPI{
		service: service,
		log:     log,
	}
}

func (api *tessellationAPI) Routes(group *helper.RouteGroup) {
	group.POST("/passes", api.runPasses)
	group.GET("/grid", api.grid)
	group.GET("/grid/:format", api.renderGrid)
	group.GET("/sources", api.sources)
	group.GET("/sources/nearest", api.nearestSources)
	group.GET("/history", api.history)
}

// runPasses advances the engine by count passes, from ?count= or a {"count": n} body. defaults to 1.
func (api *tessellationAPI) runPasses(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request := passesRequest{Count: 1}

	if raw := r.URL.Query().Get("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("count must be a valid int"))
			return
		}
		request.Count = count
	} else if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			api.BadRequestResponse(w, r, err)
			return
		}
		if err := r.Body.Close(); err != nil {
			api.ServerErrorResponse(w, r, err)
			return
		}
	}

	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	results, err := api.service.RunPasses(r.Context(), request.Count)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewPassResponses(results)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *tessellationAPI) grid(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewGridResponse(api.service.Grid())}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *tessellationAPI) renderGrid(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	format, err := usecases.ParseFormat(p.ByName("format"))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	data, err := api.service.Render(format)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format == usecases.FormatCSV {
		w.Header().Set("Content-Disposition", `attachment; filename="table.csv"`)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		api.log.Error("write render", zap.String("format", string(format)), zap.Error(err))
	}
}

func (api *tessellationAPI) sources(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSourceResponses(api.service.Sources())}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *tessellationAPI) history(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewPassResponses(api.service.History())}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// nearestSources ?row=&col=&k= closest seeds to a cell, k defaults to 1.
func (api *tessellationAPI) nearestSources(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestRequest
		err     error
	)

	query := r.URL.Query()

	request.Row, err = strconv.Atoi(query.Get("row"))
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("row is required and must be a valid int"))
		return
	}
	request.Col, err = strconv.Atoi(query.Get("col"))
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("col is required and must be a valid int"))
		return
	}
	request.K = 1
	if raw := query.Get("k"); raw != "" {
		request.K, err = strconv.Atoi(raw)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("k must be a valid int"))
			return
		}
	}
	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	nearest, err := api.service.NearestSources(request.Row, request.Col, request.K)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": nearest}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
