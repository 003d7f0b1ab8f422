package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Werneck0live/painel-rebate/internal/dataset"
	"github.com/Werneck0live/painel-rebate/internal/models"
	"github.com/Werneck0live/painel-rebate/internal/rebate"
	"github.com/Werneck0live/painel-rebate/internal/repository"
	"github.com/Werneck0live/painel-rebate/internal/target"
	"github.com/Werneck0live/painel-rebate/internal/utils"
)

type SupplierRepo interface {
	GetAll(ctx context.Context, limit, skip int64) ([]models.Supplier, error)
	GetByID(ctx context.Context, id string) (*models.Supplier, error)
	Create(ctx context.Context, s *models.Supplier) (string, error)
	ReplaceAll(ctx context.Context, suppliers []models.Supplier) (int, error)
	Delete(ctx context.Context, id string) error
}

type PerformanceRepo interface {
	GetAll(ctx context.Context) ([]models.OutletEntry, error)
	ReplaceAll(ctx context.Context, entries []models.OutletEntry) (int, error)
}

type Publisher interface {
	Publish(ctx context.Context, body string, headers amqp.Table) error
	Close() error
}

type DashboardHandler struct {
	Repo SupplierRepo
	Perf PerformanceRepo
	Pub  Publisher
}

func NewDashboardHandler(repo SupplierRepo, perf PerformanceRepo, pub Publisher) *DashboardHandler {
	return &DashboardHandler{Repo: repo, Perf: perf, Pub: pub}
}

func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// garante o padrão /api/suppliers/{id} ou /api/suppliers/{id}/rebate
func parseSupplierPath(path string) (id, sub string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || parts[0] != "api" || parts[1] != "suppliers" || parts[2] == "" {
		return "", "", false
	}
	switch len(parts) {
	case 3:
		return parts[2], "", true
	case 4:
		return parts[2], parts[3], true
	}
	return "", "", false
}

func (h *DashboardHandler) Suppliers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {

	case http.MethodGet:
		q := r.URL.Query()
		limit := int64(50)
		skip := int64(0)
		if l := q.Get("limit"); l != "" {
			if v, err := strconv.ParseInt(l, 10, 64); err == nil && v > 0 && v <= 200 {
				limit = v
			}
		}
		if s := q.Get("skip"); s != "" {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil && v >= 0 {
				skip = v
			}
		}
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		list, err := h.Repo.GetAll(ctx, limit, skip)
		if err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		utils.WriteJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var dto SupplierCreateDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}
		if err := validateCreateDTO(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		s := models.Supplier{
			Name:            strings.TrimSpace(dto.Name),
			BaseTarget:      dto.BaseTarget,
			PriorPurchase:   dto.PriorPurchase,
			CurrentPurchase: dto.CurrentPurchase,
		}
		for _, t := range dto.Slabs {
			s.Slabs = append(s.Slabs, models.SlabTier{
				Label:         t.Label,
				Threshold:     t.Threshold,
				RebatePercent: t.RebatePercent,
			})
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if _, err := h.Repo.Create(ctx, &s); err != nil {
			if errors.Is(err, repository.ErrDuplicateSupplier) {
				utils.WriteJSON(w, http.StatusConflict, map[string]string{"error": "supplier already exists"})
				return
			}
			utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		h.publishEvent("create", "suppliers", 1)
		utils.WriteJSON(w, http.StatusCreated, s)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *DashboardHandler) SupplierByID(w http.ResponseWriter, r *http.Request) {
	id, sub, ok := parseSupplierPath(r.URL.Path)
	if !ok {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	switch {
	case sub == "" && r.Method == http.MethodGet:
		s, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		utils.WriteJSON(w, http.StatusOK, s)

	case sub == "" && r.Method == http.MethodDelete:
		if _, err := h.Repo.GetByID(ctx, id); err != nil {
			utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		if err := h.Repo.Delete(ctx, id); err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		h.publishEvent("delete", "suppliers", 1)
		w.WriteHeader(http.StatusNoContent)

	case sub == "rebate" && r.Method == http.MethodGet:
		s, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		res := rebate.Evaluate(s.Slabs, s.CurrentPurchase)
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"supplier":         s.Name,
			"current_purchase": s.CurrentPurchase,
			"base_target":      s.BaseTarget,
			"gap_to_target":    s.BaseTarget - s.CurrentPurchase,
			"rebate":           res,
		})

	case sub != "" && sub != "rebate":
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// RebateSummary são os cards de KPI do painel de fornecedores.
func (h *DashboardHandler) RebateSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	suppliers, err := h.Repo.GetAll(ctx, 0, 0) // snapshot inteiro
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	utils.WriteJSON(w, http.StatusOK, rebate.BuildOverview(suppliers))
}

// Slabs é a tabela de progresso de faixas; ?status=pending|achieved filtra.
func (h *DashboardHandler) Slabs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	suppliers, err := h.Repo.GetAll(ctx, 0, 0)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	rows := rebate.BuildBreakdown(suppliers)
	switch strings.ToLower(r.URL.Query().Get("status")) {
	case "pending":
		rows = filterBreakdown(rows, rebate.StatusPending)
	case "achieved":
		rows = filterBreakdown(rows, rebate.StatusAchieved)
	}
	utils.WriteJSON(w, http.StatusOK, rows)
}

func filterBreakdown(rows []rebate.BreakdownRow, status string) []rebate.BreakdownRow {
	out := []rebate.BreakdownRow{}
	for _, r := range rows {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// Performance é a tabela meta x realizado; ?outlet= e ?months=JAN,FEB filtram.
func (h *DashboardHandler) Performance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rows, err := h.performanceRows(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	utils.WriteJSON(w, http.StatusOK, rows)
}

func (h *DashboardHandler) PerformanceSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rows, err := h.performanceRows(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	utils.WriteJSON(w, http.StatusOK, target.BuildSummary(rows))
}

// performanceRows monta as linhas reconciliadas e aplica os filtros da query.
// Os filtros entram DEPOIS do cálculo: o ratio de janeiro vale mesmo quando
// janeiro está fora do filtro.
func (h *DashboardHandler) performanceRows(r *http.Request) ([]target.Row, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	entries, err := h.Perf.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := target.BuildRows(entries)

	q := r.URL.Query()
	if outlet := strings.TrimSpace(q.Get("outlet")); outlet != "" {
		filtered := []target.Row{}
		for _, row := range rows {
			if strings.EqualFold(row.Outlet, outlet) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	if months := strings.TrimSpace(q.Get("months")); months != "" {
		want := map[string]bool{}
		for _, m := range strings.Split(months, ",") {
			want[strings.ToUpper(strings.TrimSpace(m))] = true
		}
		filtered := []target.Row{}
		for _, row := range rows {
			if want[row.Month] {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	return rows, nil
}

// ImportSuppliers recebe a planilha de rebate (multipart, campo "file"),
// troca o snapshot e avisa os painéis conectados.
func (h *DashboardHandler) ImportSuppliers(w http.ResponseWriter, r *http.Request) {
	h.importWorkbook(w, r, "suppliers", func(ctx context.Context, r *http.Request) (int, error) {
		file, _, err := r.FormFile("file")
		if err != nil {
			return 0, err
		}
		defer file.Close()

		suppliers, err := dataset.ParseSupplierWorkbook(file, dataset.DefaultSupplierColumns())
		if err != nil {
			return 0, err
		}
		return h.Repo.ReplaceAll(ctx, suppliers)
	})
}

// ImportTargets idem para a planilha de metas por loja.
func (h *DashboardHandler) ImportTargets(w http.ResponseWriter, r *http.Request) {
	h.importWorkbook(w, r, "targets", func(ctx context.Context, r *http.Request) (int, error) {
		file, _, err := r.FormFile("file")
		if err != nil {
			return 0, err
		}
		defer file.Close()

		entries, err := dataset.ParseTargetWorkbook(file, dataset.DefaultTargetColumns())
		if err != nil {
			return 0, err
		}
		return h.Perf.ReplaceAll(ctx, entries)
	})
}

func (h *DashboardHandler) importWorkbook(w http.ResponseWriter, r *http.Request, name string, load func(context.Context, *http.Request) (int, error)) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	n, err := load(ctx, r)
	if err != nil {
		// planilha ruim é erro do cliente, não do servidor
		utils.BadRequest(w, err.Error())
		return
	}

	h.publishEvent("import", name, n)
	utils.WriteJSON(w, http.StatusOK, map[string]any{"dataset": name, "imported": n})
}

type refreshEvent struct {
	Action    string `json:"action"`
	Dataset   string `json:"dataset"`
	Rows      int    `json:"rows"`
	Timestamp string `json:"timestamp"`
}

func (h *DashboardHandler) publishEvent(action, dsname string, rows int) {
	if h.Pub == nil {
		return
	}
	ev := refreshEvent{
		Action:    action,
		Dataset:   dsname,
		Rows:      rows,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_ = h.Pub.Publish(ctx, string(body), amqp.Table{
		"action":    action,
		"dataset":   dsname,
		"rows":      int32(rows),
		"timestamp": ev.Timestamp,
	})
}
