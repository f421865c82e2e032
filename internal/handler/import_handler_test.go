package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/dto"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
)

type adminImporterMock struct {
	result   dto.ActionResult
	received []byte
}

func (m *adminImporterMock) UploadSchedule(ctx context.Context, data []byte) dto.ActionResult {
	m.received = data
	return m.result
}

func (m *adminImporterMock) UploadTextbook(ctx context.Context, data []byte) dto.ActionResult {
	m.received = data
	return m.result
}

func TestImportHandlerUploadSchedule(t *testing.T) {
	mock := &adminImporterMock{result: dto.ActionResult{Success: true, Message: "Successfully imported 3 sessions."}}
	h := NewImportHandler(mock, 0)

	c, w := newUploadContext(t, "/admin/imports/schedule", "file", []byte("PK-workbook"))
	h.UploadSchedule(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte("PK-workbook"), mock.received)
	var result dto.ActionResult
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Successfully imported 3 sessions.", result.Message)
}

func TestImportHandlerFailureResult(t *testing.T) {
	mock := &adminImporterMock{result: dto.ActionResult{Success: false, Error: "Excel is empty"}}
	h := NewImportHandler(mock, 0)

	c, w := newUploadContext(t, "/admin/imports/textbook", "file", []byte("x"))
	h.UploadTextbook(c)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Excel is empty")
}

func TestImportHandlerRejectsMissingAndOversizedFiles(t *testing.T) {
	mock := &adminImporterMock{}
	h := NewImportHandler(mock, 4)

	c, w := newUploadContext(t, "/admin/imports/schedule", "", nil)
	h.UploadSchedule(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newUploadContext(t, "/admin/imports/schedule", "file", []byte("too large"))
	h.UploadSchedule(c)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, appErrors.ErrPayloadTooLarge.Code, decodeEnvelope(t, w).Error.Code)
	assert.Nil(t, mock.received)
}
