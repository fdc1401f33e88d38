package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"sectiontoc/internal/service"
	"sectiontoc/internal/service/mocks"
	"sectiontoc/internal/storage"
	"sectiontoc/internal/toc"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func entry(id, colPos, sorting int) toc.Entry {
	row := toc.Row{
		toc.FieldID:             id,
		toc.FieldTitle:          "Entry",
		toc.FieldColumnPosition: colPos,
		toc.FieldSorting:        sorting,
	}
	return toc.MapEntry(row, toc.FirstLevel, nil, false)
}

func boolPtr(b bool) *bool { return &b }

func TestParseColumnFilter(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{in: "", want: nil},
		{in: "  ", want: nil},
		{in: "*", want: nil},
		{in: " * ", want: nil},
		{in: "0", want: []int{0}},
		{in: "0,1, 2", want: []int{0, 1, 2}},
		{in: "1,,3,", want: []int{1, 3}},
		{in: ",,", want: nil},
		{in: "abc", want: []int{0}},
		{in: "a,2,b", want: []int{0, 2}},
		{in: "3px, 7", want: []int{3, 7}},
		{in: "1,*", want: []int{0, 1}},
		{in: "-1,+5", want: []int{-1, 5}},
		{in: "-", want: []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := service.ParseColumnFilter(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Errorf("ParseColumnFilter(%q) = %v, want nil", tt.in, got.Values())
				}
				return
			}
			if !reflect.DeepEqual(got.Values(), tt.want) {
				t.Errorf("ParseColumnFilter(%q) = %v, want %v", tt.in, got.Values(), tt.want)
			}
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "3", want: 3},
		{in: " 4 ", want: 4},
		{in: "-2", want: 0},
		{in: "deep", wantErr: true},
		{in: "2.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := service.ParseMaxDepth(tt.in)
			if tt.wantErr {
				var validationErr *service.ValidationError
				if !errors.As(err, &validationErr) || validationErr.Field != "maxDepth" {
					t.Errorf("ParseMaxDepth(%q) error = %v, want maxDepth ValidationError", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseMaxDepth(%q) = %d, %v, want %d", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestResolvePageIDs(t *testing.T) {
	tests := []struct {
		name    string
		pages   string
		current int
		want    []int
		wantOK  bool
	}{
		{name: "empty uses current", pages: "", current: 7, want: []int{7}, wantOK: true},
		{name: "this", pages: "this", current: 7, want: []int{7}, wantOK: true},
		{name: "this without current", pages: "this", current: 0, want: []int{0}, wantOK: false},
		{name: "csv", pages: "3, 1,2", current: 7, want: []int{3, 1, 2}, wantOK: true},
		{name: "mixed", pages: "This,4", current: 7, want: []int{7, 4}, wantOK: true},
		{name: "duplicates", pages: "4,4,this", current: 4, want: []int{4}, wantOK: true},
		{name: "invalid items dropped", pages: "x,-1,0,5", current: 0, want: []int{5}, wantOK: true},
		{name: "nothing valid", pages: "x,-1", current: 7, want: []int{0}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := service.ResolvePageIDs(tt.pages, tt.current)
			if !reflect.DeepEqual(got, tt.want) || ok != tt.wantOK {
				t.Errorf("ResolvePageIDs(%q, %d) = %v, %v, want %v, %v", tt.pages, tt.current, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTocService_BuildToc_SettingsPrecedence(t *testing.T) {
	defaults := service.Defaults{
		Mode:              "sectionIndexOnly",
		IncludeColPos:     "0,1",
		ExcludeColPos:     "9",
		MaxDepth:          "4",
		UseAnchorOverride: true,
	}

	tests := []struct {
		name string
		req  service.TocRequest
		want toc.Configuration
	}{
		{
			name: "configured defaults",
			req:  service.TocRequest{Pages: "1"},
			want: toc.Configuration{
				Mode:              toc.ModeSectionIndexOnly,
				AllowedColumns:    toc.NewColumnSet(0, 1),
				ExcludedColumns:   toc.NewColumnSet(9),
				MaxDepth:          4,
				UseAnchorOverride: true,
			},
		},
		{
			name: "request wins",
			req: service.TocRequest{
				Pages:             "1",
				CurrentElementID:  12,
				Mode:              "all",
				IncludeColPos:     "*",
				ExcludeColPos:     "2",
				MaxDepth:          "-1",
				UseAnchorOverride: boolPtr(false),
			},
			want: toc.Configuration{
				Mode:            toc.ModeAll,
				ExcludedColumns: toc.NewColumnSet(2),
				ExcludeID:       12,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			builder := mocks.NewMockTocBuilder(ctrl)
			builder.EXPECT().
				Build(gomock.Any(), []int{1}, tt.want, gomock.Nil()).
				Return([]toc.Entry{}, nil)

			svc := service.NewTocService(builder, nil, defaults)
			resp, err := svc.BuildToc(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("BuildToc() error = %v", err)
			}
			if !reflect.DeepEqual(resp.Config, tt.want) {
				t.Errorf("BuildToc() config = %+v, want %+v", resp.Config, tt.want)
			}
		})
	}
}

func TestTocService_BuildToc_BuiltInDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	builder := mocks.NewMockTocBuilder(ctrl)
	builder.EXPECT().
		Build(gomock.Any(), []int{5}, toc.DefaultConfiguration(), gomock.Nil()).
		Return(nil, nil)

	svc := service.NewTocService(builder, nil, service.Defaults{})
	resp, err := svc.BuildToc(context.Background(), service.TocRequest{CurrentPageID: 5})
	if err != nil {
		t.Fatalf("BuildToc() error = %v", err)
	}
	if len(resp.Entries) != 0 {
		t.Errorf("BuildToc() entries = %v, want none", resp.Entries)
	}
}

func TestTocService_BuildToc_SortsEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	builder := mocks.NewMockTocBuilder(ctrl)
	builder.EXPECT().
		Build(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]toc.Entry{entry(1, 1, 10), entry(2, 0, 512), entry(3, 0, 256)}, nil)

	svc := service.NewTocService(builder, nil, service.Defaults{})
	resp, err := svc.BuildToc(context.Background(), service.TocRequest{Pages: "1"})
	if err != nil {
		t.Fatalf("BuildToc() error = %v", err)
	}

	var ids []int
	for _, e := range resp.Entries {
		ids = append(ids, e.ID())
	}
	if !reflect.DeepEqual(ids, []int{3, 2, 1}) {
		t.Errorf("BuildToc() order = %v, want [3 2 1]", ids)
	}
}

func TestTocService_BuildToc_InvalidPagesBuildEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	builder := mocks.NewMockTocBuilder(ctrl)
	builder.EXPECT().
		Build(gomock.Any(), []int{0}, gomock.Any(), gomock.Any()).
		Return([]toc.Entry{}, nil)

	svc := service.NewTocService(builder, nil, service.Defaults{})
	resp, err := svc.BuildToc(context.Background(), service.TocRequest{Pages: "none"})
	if err != nil {
		t.Fatalf("BuildToc() error = %v", err)
	}
	if !reflect.DeepEqual(resp.PageIDs, []int{0}) {
		t.Errorf("BuildToc() page ids = %v, want [0]", resp.PageIDs)
	}
}

func TestTocService_BuildToc_Errors(t *testing.T) {
	t.Run("invalid max depth", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		builder := mocks.NewMockTocBuilder(ctrl)

		svc := service.NewTocService(builder, nil, service.Defaults{})
		_, err := svc.BuildToc(context.Background(), service.TocRequest{Pages: "1", MaxDepth: "two"})

		var validationErr *service.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("BuildToc() error = %v, want ValidationError", err)
		}
		if !errors.Is(err, service.ErrInvalidInput) {
			t.Error("ValidationError should match ErrInvalidInput")
		}
	})

	t.Run("row source failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		builder := mocks.NewMockTocBuilder(ctrl)
		cause := errors.New("disk I/O error")
		builder.EXPECT().
			Build(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, cause)

		svc := service.NewTocService(builder, nil, service.Defaults{})
		_, err := svc.BuildToc(context.Background(), service.TocRequest{Pages: "1"})
		if !errors.Is(err, service.ErrExternalService) || !errors.Is(err, cause) {
			t.Errorf("BuildToc() error = %v, want wrapped ErrExternalService", err)
		}
	})
}

func TestTocService_BuildToc_PassesHooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	builder := mocks.NewMockTocBuilder(ctrl)
	hooks := (&toc.Hooks{}).OnFilterItem(func(*toc.ItemFilterEvent) {})
	builder.EXPECT().
		Build(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(hooks)).
		Return(nil, nil)

	svc := service.NewTocService(builder, nil, service.Defaults{}, service.WithHooks(hooks))
	if _, err := svc.BuildToc(context.Background(), service.TocRequest{Pages: "1"}); err != nil {
		t.Fatalf("BuildToc() error = %v", err)
	}
}

func TestTocService_PageToc(t *testing.T) {
	tests := []struct {
		name      string
		pageID    int
		mockSetup func(*mocks.MockPageLookup, *mocks.MockTocBuilder)
		wantErr   error
	}{
		{
			name:   "existing page",
			pageID: 3,
			mockSetup: func(pages *mocks.MockPageLookup, builder *mocks.MockTocBuilder) {
				pages.EXPECT().GetByID(gomock.Any(), 3).Return(storage.Page{ID: 3}, nil)
				builder.EXPECT().Build(gomock.Any(), []int{3}, gomock.Any(), gomock.Any()).Return([]toc.Entry{entry(1, 0, 1)}, nil)
			},
		},
		{
			name:   "missing page",
			pageID: 4,
			mockSetup: func(pages *mocks.MockPageLookup, builder *mocks.MockTocBuilder) {
				pages.EXPECT().GetByID(gomock.Any(), 4).Return(storage.Page{}, storage.ErrNotFound)
			},
			wantErr: service.ErrNotFound,
		},
		{
			name:   "lookup failure",
			pageID: 5,
			mockSetup: func(pages *mocks.MockPageLookup, builder *mocks.MockTocBuilder) {
				pages.EXPECT().GetByID(gomock.Any(), 5).Return(storage.Page{}, errors.New("closed"))
			},
			wantErr: service.ErrExternalService,
		},
		{
			name:      "non-positive id",
			pageID:    0,
			mockSetup: func(*mocks.MockPageLookup, *mocks.MockTocBuilder) {},
			wantErr:   service.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			pages := mocks.NewMockPageLookup(ctrl)
			builder := mocks.NewMockTocBuilder(ctrl)
			tt.mockSetup(pages, builder)

			svc := service.NewTocService(builder, pages, service.Defaults{})
			resp, err := svc.PageToc(context.Background(), tt.pageID, service.TocRequest{Pages: "99"})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("PageToc() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PageToc() error = %v", err)
			}
			if len(resp.Entries) != 1 {
				t.Errorf("PageToc() entries = %d, want 1", len(resp.Entries))
			}
		})
	}
}
