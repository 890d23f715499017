package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"techassist/internal/report/usecase"
)

type mockReportUseCase struct {
	CurrentPeriodFunc func() (int, int)
	MonthlyReportFunc func(ctx context.Context, year, month int) (*usecase.MonthlyReport, error)
}

func (m *mockReportUseCase) CurrentPeriod() (int, int) {
	return m.CurrentPeriodFunc()
}

func (m *mockReportUseCase) MonthlyReport(ctx context.Context, year, month int) (*usecase.MonthlyReport, error) {
	return m.MonthlyReportFunc(ctx, year, month)
}

func TestMonthlyRevenue_QueryParameters(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantYear   int
		wantMonth  int
	}{
		{"defaults", "", http.StatusOK, 2024, 6},
		{"explicit", "?year=2023&month=11", http.StatusOK, 2023, 11},
		{"only month", "?month=2", http.StatusOK, 2024, 2},
		{"not a number", "?year=abc", http.StatusBadRequest, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotYear, gotMonth int
			uc := &mockReportUseCase{
				CurrentPeriodFunc: func() (int, int) { return 2024, 6 },
				MonthlyReportFunc: func(ctx context.Context, year, month int) (*usecase.MonthlyReport, error) {
					gotYear, gotMonth = year, month
					return &usecase.MonthlyReport{Year: year, Month: month}, nil
				},
			}

			rec := httptest.NewRecorder()
			NewReportController(uc, zap.NewNop()).MonthlyRevenue(rec,
				httptest.NewRequest(http.MethodGet, "/api/relatorios/faturamento"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantYear, gotYear)
			assert.Equal(t, tt.wantMonth, gotMonth)
		})
	}
}
