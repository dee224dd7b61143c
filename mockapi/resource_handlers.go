package mockapi

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"

	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
	"github.com/jrsteele09/go-pg-admin/pgadmin"
)

const maxReceiptSize = 5 << 20

// listHandler serves a filtered, sorted and paged collection.
func listHandler[T any](s *Server, load func() []T, filters []paramFilter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := toRows(load())
		if err != nil {
			s.logger.Err(err).Str("path", r.URL.Path).Msg("Failed to encode rows")
			writeError(w, http.StatusInternalServerError, "Could not load data")
			return
		}
		page, pagination := listPage(rows, filters, r.URL.Query())
		writePage(w, page, pagination)
	}
}

func (s *Server) MembersHandler() http.HandlerFunc {
	return listHandler(s, s.data.Members, memberFilters)
}

func (s *Server) RoomsHandler() http.HandlerFunc {
	return listHandler(s, s.data.Rooms, roomFilters)
}

func (s *Server) PaymentsHandler() http.HandlerFunc {
	return listHandler(s, s.data.Payments, paymentFilters)
}

func (s *Server) ExpensesHandler() http.HandlerFunc {
	return listHandler(s, s.data.Expenses, expenseFilters)
}

func (s *Server) ApprovalsHandler() http.HandlerFunc {
	return listHandler(s, s.data.Approvals, approvalFilters)
}

func (s *Server) DecideApprovalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var decision pgadmin.Decision
		if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		approval, err := s.data.Decide(r.PathValue("id"), decision, staffFromContext(r.Context()).Name)
		switch {
		case apperrors.Is(err, apperrors.ErrNotFound):
			writeError(w, http.StatusNotFound, "Approval not found")
		case apperrors.Is(err, apperrors.ErrValidation):
			writeError(w, http.StatusConflict, err.Error())
		case err != nil:
			writeError(w, http.StatusInternalServerError, "Could not update approval")
		default:
			writeData(w, "Approval "+string(approval.Status), approval)
		}
	}
}

func (s *Server) ReceiptUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
			writeError(w, http.StatusBadRequest, "Expected a multipart receipt upload")
			return
		}
		file, header, err := r.FormFile("receipt")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Missing receipt file")
			return
		}
		defer file.Close()

		content, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Could not read receipt")
			return
		}

		payment, err := s.data.AttachReceipt(r.PathValue("id"), filepath.Base(header.Filename), content, NowTimeFunc())
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Payment not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Could not store receipt")
			return
		}
		writeData(w, "Receipt uploaded", payment)
	}
}

func (s *Server) SummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeData(w, "OK", s.data.Summary(NowTimeFunc()))
	}
}
