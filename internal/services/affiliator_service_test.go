package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/dondigital/storefront/internal/database"
	"github.com/dondigital/storefront/internal/repository"
)

func newTestService(t *testing.T) (*AffiliatorService, *repository.GormAffiliatorRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	repo := repository.NewAffiliatorRepository(db)
	return NewAffiliatorService(repo, "https://dondigital.vercel.app", 6), repo
}

func TestCodePrefix(t *testing.T) {
	cases := []struct {
		username string
		want     string
	}{
		{"maria", "MARI"},
		{"kai", "KAI"},
		{"jo-anne l.", "JOAN"},
		{"@@@", "REF"},
		{"", "REF"},
		{"x9", "X9"},
	}
	for _, tc := range cases {
		if got := codePrefix(tc.username); got != tc.want {
			t.Errorf("codePrefix(%q) = %q, want %q", tc.username, got, tc.want)
		}
	}
}

func TestGenerateReferralCodeShape(t *testing.T) {
	svc, _ := newTestService(t)

	code, err := svc.GenerateReferralCode("maria")
	if err != nil {
		t.Fatalf("GenerateReferralCode error: %v", err)
	}
	prefix, suffix, found := strings.Cut(code, "-")
	if !found {
		t.Fatalf("Expected PREFIX-SUFFIX shape, got %q", code)
	}
	if prefix != "MARI" {
		t.Errorf("Expected prefix MARI, got %q", prefix)
	}
	if len(suffix) != 6 {
		t.Errorf("Expected 6-character suffix, got %q", suffix)
	}
	for _, r := range suffix {
		if !strings.ContainsRune(codeCharset, r) {
			t.Errorf("Suffix character %q outside charset", r)
		}
	}
}

func TestGenerateReferralCodeAvoidsCollisions(t *testing.T) {
	svc, repo := newTestService(t)

	// Register a first code, then generate again for the same username: the
	// retry loop must hand back a different one.
	first, _, err := svc.CreateWithReferral("maria", 0)
	if err != nil {
		t.Fatalf("CreateWithReferral error: %v", err)
	}
	second, err := svc.GenerateReferralCode("maria")
	if err != nil {
		t.Fatalf("GenerateReferralCode error: %v", err)
	}
	if first.ReferralCode == nil {
		t.Fatal("Expected a referral code on the created affiliator")
	}
	if second == *first.ReferralCode {
		t.Errorf("Expected a fresh code, got the existing one %q", second)
	}

	if _, err := repo.GetByReferralCode(*first.ReferralCode); err != nil {
		t.Errorf("Expected the first code to be persisted: %v", err)
	}
}

func TestRegisterEarningsCreatesThenAdds(t *testing.T) {
	svc, _ := newTestService(t)

	affiliator, created, err := svc.RegisterEarnings("kai", 100)
	if err != nil {
		t.Fatalf("RegisterEarnings error: %v", err)
	}
	if !created || affiliator.RobuxEarned != 100 {
		t.Fatalf("Expected fresh row with 100 earned, got created=%t %+v", created, affiliator)
	}

	affiliator, created, err = svc.RegisterEarnings("kai", 25)
	if err != nil {
		t.Fatalf("RegisterEarnings error: %v", err)
	}
	if created {
		t.Error("Expected the second registration to update, not create")
	}
	if affiliator.RobuxEarned != 125 || affiliator.TotalRobuxEarned != 125 {
		t.Errorf("Expected both counters at 125, got %v/%v", affiliator.RobuxEarned, affiliator.TotalRobuxEarned)
	}
}
