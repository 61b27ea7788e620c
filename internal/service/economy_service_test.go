package service

import (
	"context"
	"testing"

	"tagarena/internal/model"
	"tagarena/internal/repository"
)

func TestEconomyLoadUnknownAccount(t *testing.T) {
	svc := NewEconomyService(repository.NewMemoryLedgerRepo(), nil)

	acct, err := svc.Load(context.Background(), "newcomer")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if acct.Name != "newcomer" || acct.Taggerz != 0 {
		t.Errorf("fresh record = %+v", acct)
	}
	if acct.Purchased == nil {
		t.Error("fresh record has a nil unlock list")
	}
}

func TestEconomySaveLoadRoundTrip(t *testing.T) {
	svc := NewEconomyService(repository.NewMemoryLedgerRepo(), nil)
	ctx := context.Background()

	in := &model.Account{Name: "alice", Taggerz: 120, Purchased: []string{"color-gold", "powerup-boost"}}
	if err := svc.Save(ctx, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := svc.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Taggerz != 120 || len(out.Purchased) != 2 {
		t.Errorf("loaded record = %+v", out)
	}

	// Mutating the loaded copy must not leak back into the repository.
	out.Purchased[0] = "tampered"
	again, _ := svc.Load(ctx, "alice")
	if again.Purchased[0] != "color-gold" {
		t.Error("loaded record aliases repository state")
	}
}
