// backend-go/internal/sheets/source.go
package sheets

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sellora/salesboard/backend-go/internal/config"
	"github.com/sellora/salesboard/backend-go/internal/domain"
	"github.com/sellora/salesboard/backend-go/internal/mapping"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Source feeds the dashboard its raw inputs: per-channel sales rows plus
// the mapping and commission tables. The service only cares about the data
// shape, so a fake Source is enough for tests.
type Source interface {
	FetchChannelRows(ctx context.Context, ch domain.Channel) ([][]string, error)
	FetchTables(ctx context.Context) (*mapping.Tables, error)
}

// SheetsSource reads everything from one Google spreadsheet via a
// service-account JWT.
type SheetsSource struct {
	srv *sheets.Service
	cfg config.SheetsConfig
}

func NewSource(cfg config.SheetsConfig) (*SheetsSource, error) {
	jwt, err := google.JWTConfigFromJSON(
		[]byte(cfg.CredentialsJSON),
		sheets.SpreadsheetsReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to parse sheets credentials: %w", err)
	}

	client := jwt.Client(context.Background())

	srv, err := sheets.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to build sheets client: %w", err)
	}

	return &SheetsSource{srv: srv, cfg: cfg}, nil
}

func (s *SheetsSource) FetchChannelRows(ctx context.Context, ch domain.Channel) ([][]string, error) {
	var readRange string
	switch ch {
	case domain.ChannelSmartstore:
		readRange = s.cfg.SmartstoreRange
	case domain.ChannelOhouse:
		readRange = s.cfg.OhouseRange
	case domain.ChannelYtshopping:
		readRange = s.cfg.YtshoppingRange
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownChannel, ch)
	}

	rows, err := s.fetchRange(ctx, readRange)
	if err != nil {
		return nil, fmt.Errorf("fetch %s rows: %w", ch, err)
	}
	return rows, nil
}

func (s *SheetsSource) FetchTables(ctx context.Context) (*mapping.Tables, error) {
	mappingRows, err := s.fetchRange(ctx, s.cfg.MappingRange)
	if err != nil {
		return nil, fmt.Errorf("fetch mapping table: %w", err)
	}

	commissionRows, err := s.fetchRange(ctx, s.cfg.CommissionRange)
	if err != nil {
		return nil, fmt.Errorf("fetch commission table: %w", err)
	}

	overrideRows, err := s.fetchRange(ctx, s.cfg.CommissionOverrideRange)
	if err != nil {
		return nil, fmt.Errorf("fetch commission overrides: %w", err)
	}

	return mapping.BuildTables(mappingRows, commissionRows, overrideRows), nil
}

func (s *SheetsSource) fetchRange(ctx context.Context, readRange string) ([][]string, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read range %q: %w", readRange, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = stringify(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// stringify flattens a sheet cell. Numeric cells must not pick up
// scientific notation on the way to the positional parsers.
func stringify(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
