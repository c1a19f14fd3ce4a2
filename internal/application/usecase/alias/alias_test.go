// Package alias contains canonical PSP alias use cases.
package alias

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
)

var errStorageDown = errors.New("storage unreachable")

// fakeAliasRepo is an in-memory adapter.AliasRepository.
type fakeAliasRepo struct {
	aliases []*entity.PSPAlias
	fail    bool
}

func (f *fakeAliasRepo) Create(_ context.Context, alias *entity.PSPAlias) error {
	if f.fail {
		return errStorageDown
	}
	f.aliases = append(f.aliases, alias)
	return nil
}

func (f *fakeAliasRepo) Delete(_ context.Context, rawIdentifier string) error {
	if f.fail {
		return errStorageDown
	}
	for i, a := range f.aliases {
		if a.RawIdentifier == rawIdentifier {
			f.aliases = append(f.aliases[:i], f.aliases[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeAliasRepo) FindAll(_ context.Context) ([]*entity.PSPAlias, error) {
	if f.fail {
		return nil, errStorageDown
	}
	return f.aliases, nil
}

func TestTable_CanonicalResolution(t *testing.T) {
	repo := &fakeAliasRepo{aliases: []*entity.PSPAlias{
		entity.NewPSPAlias("ACME-TR-01", "ACME"),
		entity.NewPSPAlias("acme-tr-02", "acme"),
	}}

	table, err := NewResolver(repo).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		raw  string
		want string
	}{
		{"ACME-TR-01", "ACME"},
		{" acme-tr-02 ", "ACME"}, // normalization applies on lookup too
		{"ACME", "ACME"},         // canonical names resolve to themselves
		{"UNMAPPED", "UNMAPPED"}, // identity fallback
	}
	for _, tc := range cases {
		if got := table.Canonical(tc.raw); got != tc.want {
			t.Errorf("Canonical(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestTable_RawIdentifiersIncludeCanonical(t *testing.T) {
	repo := &fakeAliasRepo{aliases: []*entity.PSPAlias{
		entity.NewPSPAlias("ACME-TR-01", "ACME"),
		entity.NewPSPAlias("ACME-TR-02", "ACME"),
	}}

	table, err := NewResolver(repo).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	identifiers := table.RawIdentifiers("acme")
	sort.Strings(identifiers)
	want := []string{"ACME", "ACME-TR-01", "ACME-TR-02"}
	if len(identifiers) != len(want) {
		t.Fatalf("identifiers = %v, want %v", identifiers, want)
	}
	for i := range want {
		if identifiers[i] != want[i] {
			t.Fatalf("identifiers = %v, want %v", identifiers, want)
		}
	}

	// A PSP with no aliases still matches feeds keyed by its own name.
	if got := table.RawIdentifiers("SOLO"); len(got) != 1 || got[0] != "SOLO" {
		t.Errorf("RawIdentifiers(SOLO) = %v, want [SOLO]", got)
	}
}

func TestCreateAlias(t *testing.T) {
	repo := &fakeAliasRepo{}
	uc := NewCreateAliasUseCase(repo)

	output, err := uc.Execute(context.Background(), CreateAliasInput{
		RawIdentifier: " acme-tr-01 ",
		CanonicalName: "acme",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Alias.RawIdentifier != "ACME-TR-01" || output.Alias.CanonicalName != "ACME" {
		t.Errorf("alias = %q -> %q, want normalized forms", output.Alias.RawIdentifier, output.Alias.CanonicalName)
	}

	for _, input := range []CreateAliasInput{
		{RawIdentifier: "", CanonicalName: "ACME"},
		{RawIdentifier: "ACME-TR-01", CanonicalName: "  "},
	} {
		if _, err := uc.Execute(context.Background(), input); !errors.Is(err, domainerror.ErrEmptyIdentifier) {
			t.Errorf("expected ErrEmptyIdentifier for %+v, got %v", input, err)
		}
	}
}

func TestDeleteAlias(t *testing.T) {
	repo := &fakeAliasRepo{aliases: []*entity.PSPAlias{
		entity.NewPSPAlias("ACME-TR-01", "ACME"),
	}}
	uc := NewDeleteAliasUseCase(repo)

	if err := uc.Execute(context.Background(), DeleteAliasInput{RawIdentifier: " acme-tr-01 "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.aliases) != 0 {
		t.Errorf("expected the alias to be removed, %d remain", len(repo.aliases))
	}
}

func TestListAliases(t *testing.T) {
	repo := &fakeAliasRepo{aliases: []*entity.PSPAlias{
		entity.NewPSPAlias("ACME-TR-01", "ACME"),
		entity.NewPSPAlias("ACME-TR-02", "ACME"),
	}}

	output, err := NewListAliasesUseCase(repo).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Aliases) != 2 {
		t.Errorf("expected 2 aliases, got %d", len(output.Aliases))
	}
}

func TestResolver_LoadFailure(t *testing.T) {
	_, err := NewResolver(&fakeAliasRepo{fail: true}).Load(context.Background())
	if !errors.Is(err, errStorageDown) {
		t.Errorf("expected wrapped storage error, got %v", err)
	}
}
