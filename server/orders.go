package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cafedash/query"
)

type ordersResponse struct {
	query.View
	Badges []string `json:"badges"`
}

type refreshResponse struct {
	Count     int    `json:"count"`
	FetchedAt string `json:"fetched_at"`
}

func (svr *Server) listOrders(w http.ResponseWriter, r *http.Request) {

	orders, err := svr.orders(r.Context())
	if err != nil {
		svr.sendError(w, r, http.StatusBadGateway, err)
		return
	}

	_, view := ParseSession(r.URL.Query(), svr.pageSize).View(orders)

	svr.sendJSON(w, r, http.StatusOK, ordersResponse{
		View:   view,
		Badges: query.Badges(view.Descriptors),
	})
}

func (svr *Server) getOrder(w http.ResponseWriter, r *http.Request) {

	_, err := svr.orders(r.Context())
	if err != nil {
		svr.sendError(w, r, http.StatusBadGateway, err)
		return
	}

	order, err := svr.snap.lookup(chi.URLParam(r, "id"))
	if err != nil {
		svr.sendError(w, r, http.StatusNotFound, err)
		return
	}

	svr.sendJSON(w, r, http.StatusOK, order)
}

func (svr *Server) refreshOrders(w http.ResponseWriter, r *http.Request) {

	if svr.invalidator != nil {
		err := svr.invalidator.Invalidate(r.Context())
		if err != nil {
			svr.logger.Error(r.Context(), "failed to invalidate cache", err)
		}
	}

	err := svr.Refresh(r.Context())
	if err != nil {
		svr.sendError(w, r, http.StatusBadGateway, err)
		return
	}

	orders, fetched := svr.snap.get()
	svr.sendJSON(w, r, http.StatusOK, refreshResponse{
		Count:     len(orders),
		FetchedAt: fetched.Format("2006-01-02T15:04:05Z07:00"),
	})
}
