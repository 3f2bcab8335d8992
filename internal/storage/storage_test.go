package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"exportdocs/internal/storage"
	"exportdocs/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "uploads/0098765432/pl-abc.pdf", storage.UploadKey("0098765432", "PL", "abc"))
	assert.Equal(t, "uploads/unassigned/booking-abc.pdf", storage.UploadKey(" ", "booking", "abc"))
	assert.Equal(t, "uploads/__x/pl-1.pdf", storage.UploadKey("../x", "pl", "1"))
	assert.Equal(t, "templates/co_form.xlsx", storage.TemplateKey("co_form.xlsx"))
	assert.Equal(t, "templates/a_b.xlsx", storage.TemplateKey("a/b.xlsx"))

	at := time.Date(2025, 8, 20, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "outputs/co_form_0098765432_20250820_143005.xlsx", storage.OutputKey("", "co_form.xlsx", "0098765432", at))
	assert.Equal(t, "out/CO_Form_filled_20250820_143005.xlsm", storage.OutputKey("out", "CO Form.xlsm", "", at))
	assert.Equal(t, "outputs/legacy_filled_20250820_143005.xlsx", storage.OutputKey("outputs", "legacy.xls", "", at))
}

func TestReadAll(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.MockStorage)
	m.On("Get", ctx, "templates/a.xlsx").
		Return(io.NopCloser(strings.NewReader("payload")), storage.ObjectInfo{Key: "templates/a.xlsx", Size: 7}, nil)
	m.On("Get", ctx, "templates/missing.xlsx").
		Return(nil, storage.ObjectInfo{}, storage.ErrNotFound)

	b, info, err := storage.ReadAll(ctx, m, "templates/a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(b))
	assert.Equal(t, int64(7), info.Size)

	_, _, err = storage.ReadAll(ctx, m, "templates/missing.xlsx")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
	m.AssertExpectations(t)
}
