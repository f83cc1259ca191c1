package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

func exportRecords() []models.LeaveRecord {
	older := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	return []models.LeaveRecord{
		{ID: "leave-old", RequesterName: "Asha Rao", Category: models.LeaveCategorySick, Status: models.LeaveStatusApproved, SubmittedAt: older, FromDate: older, ToDate: older, DaysCount: 1},
		{ID: "leave-new", RequesterName: "Ravi Kumar", Category: models.LeaveCategoryCasual, Status: models.LeaveStatusPending, SubmittedAt: newer, FromDate: newer, ToDate: newer, DaysCount: 1},
	}
}

func TestExportRenderQueueCSV(t *testing.T) {
	svc := NewExportService(&fakeQueue{records: exportRecords()}, nil)

	payload, contentType, err := svc.RenderQueue(context.Background(), models.ApproverIdentity{ID: "teach-1"}, models.ClassScope{}, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Requester")
	// Newest submission first.
	assert.Contains(t, lines[1], "leave-new")
	assert.Contains(t, lines[2], "leave-old")
}

func TestExportRenderQueuePDF(t *testing.T) {
	svc := NewExportService(&fakeQueue{records: exportRecords()}, nil)

	payload, contentType, err := svc.RenderQueue(context.Background(), models.ApproverIdentity{ID: "teach-1"}, models.ClassScope{}, ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestExportRenderQueueUnknownFormat(t *testing.T) {
	svc := NewExportService(&fakeQueue{records: exportRecords()}, nil)

	_, _, err := svc.RenderQueue(context.Background(), models.ApproverIdentity{ID: "teach-1"}, models.ClassScope{}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
