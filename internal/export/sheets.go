package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/cjvillanueva/casamar-backend/pkg/config"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsAppender writes booking rows to a Google Sheets spreadsheet.
type SheetsAppender struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	writeRange    string
}

// NewSheetsAppender builds a Sheets client from the service account
// credentials file named in the config.
func NewSheetsAppender(ctx context.Context, cfg config.SheetsConfig) (*SheetsAppender, error) {
	if !cfg.Enabled() {
		return nil, errors.New("sheets export is not configured")
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsAppender{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		writeRange:    cfg.Range,
	}, nil
}

// Append adds one row at the end of the configured range.
func (a *SheetsAppender) Append(ctx context.Context, row []any) error {
	body := &sheets.ValueRange{Values: [][]any{row}}
	_, err := a.values.Append(a.spreadsheetID, a.writeRange, body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}
