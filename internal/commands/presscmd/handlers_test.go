package presscmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-press/pkg/interfaces"
)

type importCall struct {
	directory string
	options   interfaces.ImportOptions
}

type syncCall struct {
	directory string
	options   interfaces.SyncOptions
}

type stubPressService struct {
	importCalls []importCall
	syncCalls   []syncCall
	checkDirs   []string

	checkResult  *interfaces.CheckResult
	importResult *interfaces.ImportResult
	syncResult   *interfaces.SyncResult

	checkErr  error
	importErr error
	syncErr   error
}

func (s *stubPressService) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.Document, error) {
	return nil, nil
}

func (s *stubPressService) LoadDirectory(context.Context, string, interfaces.LoadOptions) ([]*interfaces.Document, error) {
	return nil, nil
}

func (s *stubPressService) Render(context.Context, []byte, interfaces.RenderOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubPressService) RenderDocument(context.Context, *interfaces.Document, interfaces.RenderOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubPressService) Check(_ context.Context, dir string, _ interfaces.LoadOptions) (*interfaces.CheckResult, error) {
	s.checkDirs = append(s.checkDirs, dir)
	if s.checkErr != nil {
		return nil, s.checkErr
	}
	if s.checkResult != nil {
		return s.checkResult, nil
	}
	return &interfaces.CheckResult{}, nil
}

func (s *stubPressService) Import(_ context.Context, dir string, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	s.importCalls = append(s.importCalls, importCall{directory: dir, options: opts})
	if s.importErr != nil {
		return nil, s.importErr
	}
	if s.importResult != nil {
		return s.importResult, nil
	}
	return &interfaces.ImportResult{}, nil
}

func (s *stubPressService) Sync(_ context.Context, dir string, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	s.syncCalls = append(s.syncCalls, syncCall{directory: dir, options: opts})
	if s.syncErr != nil {
		return nil, s.syncErr
	}
	if s.syncResult != nil {
		return s.syncResult, nil
	}
	return &interfaces.SyncResult{}, nil
}

func TestCheckDirectoryHandlerExecutes(t *testing.T) {
	svc := &stubPressService{checkResult: &interfaces.CheckResult{Scanned: 3, Valid: 3}}
	h := NewCheckDirectoryHandler(svc, nil)

	if err := h.Execute(context.Background(), CheckDirectoryCommand{Directory: "content"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(svc.checkDirs) != 1 || svc.checkDirs[0] != "content" {
		t.Fatalf("unexpected check calls: %v", svc.checkDirs)
	}
}

func TestCheckDirectoryHandlerFailsOnErrors(t *testing.T) {
	svc := &stubPressService{checkResult: &interfaces.CheckResult{
		Scanned: 1,
		Errors:  []error{errors.New("bad front matter")},
	}}
	h := NewCheckDirectoryHandler(svc, nil)

	err := h.Execute(context.Background(), CheckDirectoryCommand{Directory: "content"})
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}
}

func TestCheckDirectoryHandlerStrictWarnings(t *testing.T) {
	svc := &stubPressService{checkResult: &interfaces.CheckResult{
		Scanned:  1,
		Valid:    1,
		Warnings: []interfaces.Warning{{Code: "empty_body", Path: "a.md"}},
	}}
	h := NewCheckDirectoryHandler(svc, nil)

	if err := h.Execute(context.Background(), CheckDirectoryCommand{Directory: "content"}); err != nil {
		t.Fatalf("warnings must pass without strict, got %v", err)
	}

	err := h.Execute(context.Background(), CheckDirectoryCommand{Directory: "content", Strict: true})
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed in strict mode, got %v", err)
	}
}

func TestImportDirectoryHandlerForwardsOptions(t *testing.T) {
	svc := &stubPressService{}
	h := NewImportDirectoryHandler(svc, nil, FeatureGates{})

	msg := ImportDirectoryCommand{Directory: "content", RenderHTML: true, DryRun: true}
	if err := h.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(svc.importCalls) != 1 {
		t.Fatalf("expected one import call, got %d", len(svc.importCalls))
	}
	opts := svc.importCalls[0].options
	if !opts.RenderHTML || !opts.DryRun {
		t.Fatalf("options not forwarded: %+v", opts)
	}
}

func TestImportDirectoryHandlerHonoursFeatureGate(t *testing.T) {
	svc := &stubPressService{}
	h := NewImportDirectoryHandler(svc, nil, FeatureGates{
		ImportEnabled: func() bool { return false },
	})

	err := h.Execute(context.Background(), ImportDirectoryCommand{Directory: "content"})
	if err == nil {
		t.Fatal("expected feature gate error")
	}
	if !errors.Is(err, ErrImportFeatureDisabled) {
		t.Fatalf("expected ErrImportFeatureDisabled, got %v", err)
	}
	if len(svc.importCalls) != 0 {
		t.Fatal("service must not be called when the feature is disabled")
	}
}

func TestImportDirectoryHandlerValidatesDirectory(t *testing.T) {
	svc := &stubPressService{}
	h := NewImportDirectoryHandler(svc, nil, FeatureGates{})

	err := h.Execute(context.Background(), ImportDirectoryCommand{Directory: "   "})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(svc.importCalls) != 0 {
		t.Fatal("service must not be called when validation fails")
	}
}

func TestSyncDirectoryHandlerForwardsDeleteFlag(t *testing.T) {
	svc := &stubPressService{}
	h := NewSyncDirectoryHandler(svc, nil, FeatureGates{})

	msg := SyncDirectoryCommand{Directory: "content", DeleteOrphaned: true}
	if err := h.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(svc.syncCalls) != 1 || !svc.syncCalls[0].options.DeleteOrphaned {
		t.Fatalf("delete flag not forwarded: %+v", svc.syncCalls)
	}
}

func TestSyncDirectoryHandlerPropagatesServiceError(t *testing.T) {
	svc := &stubPressService{syncErr: errors.New("boom")}
	h := NewSyncDirectoryHandler(svc, nil, FeatureGates{})

	err := h.Execute(context.Background(), SyncDirectoryCommand{Directory: "content"})
	if err == nil {
		t.Fatal("expected sync error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestRegisterPressCommands(t *testing.T) {
	svc := &stubPressService{}
	registry := &recordingRegistry{}

	set, err := RegisterPressCommands(registry, svc, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("RegisterPressCommands: %v", err)
	}
	if set.Check == nil || set.Import == nil || set.Sync == nil {
		t.Fatalf("incomplete handler set: %+v", set)
	}
	if registry.count != 3 {
		t.Fatalf("expected 3 registered handlers, got %d", registry.count)
	}
}

func TestRegisterPressCommandsRequiresService(t *testing.T) {
	if _, err := RegisterPressCommands(nil, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error for nil service")
	}
}

type recordingRegistry struct {
	count int
}

func (r *recordingRegistry) RegisterCommand(any) error {
	r.count++
	return nil
}
