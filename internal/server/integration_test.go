package server

import (
	"encoding/json"
	"testing"

	"locationservice/internal/models"
	"locationservice/internal/testutil"
)

// TestLocateAgainstDatabase runs locate requests through the full stack
// against PostgreSQL. Skipped unless TEST_DATABASE_URL is set.
func TestLocateAgainstDatabase(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	testutil.CreateTestOwner(t, database, "main", models.StrategyBasic)
	lib := testutil.CreateTestLocation(t, database, "main", models.TierLibrary, "MAIN", nil)
	fic := testutil.CreateTestLocation(t, database, "main", models.TierCollection, "MAIN FIC", lib)
	testutil.CreateTestLocation(t, database, "main", models.TierShelf, "MAIN FIC A-K", fic)
	testutil.CreateTestLocationInCollection(t, database, "main", models.TierShelf, "MAIN FIC [L]-[Z]", "FIC", fic)
	testutil.CreateTestRedirect(t, database, "main", models.RedirectPreprocessing, `^OLD `, "MAIN ", 0)
	testutil.CreateTestRedirect(t, database, "main", models.RedirectNotFound, `^\S+ (.*)$`, "MAIN $1", 0)

	s := New(testConfig())
	rec := &countingRecorder{}
	s.RegisterRoutes(database, rec)

	tests := []struct {
		name        string
		query       string
		wantOutcome string
		wantCallNo  string
	}{
		{"shelf", "callno=main+fic+a-k+123", models.OutcomeResolved, "MAIN FIC A-K"},
		{"collection", "callno=MAIN+FIC+ZZ", models.OutcomeResolved, "MAIN FIC"},
		{"library", "callno=MAIN+999", models.OutcomeResolved, "MAIN"},
		{"preprocessing redirect", "callno=OLD+FIC+X", models.OutcomeResolved, "MAIN FIC"},
		{"not found redirect", "callno=BRANCH+FIC", models.OutcomeRedirected, "MAIN FIC"},
		{"not found", "callno=NOWHERE", models.OutcomeNotFound, ""},
		{"collection interval", "callno=MAIN+FIC+Smith&collection=FIC", models.OutcomeResolved, "MAIN FIC [L]-[Z]"},
		{"collection falls through", "callno=MAIN+FIC+Aho&collection=FIC", models.OutcomeResolved, "MAIN FIC"},
		{"without collection", "callno=MAIN+FIC+Smith", models.OutcomeResolved, "MAIN FIC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, body := request(t, s.App, "GET", "/locate?owner=main&lang=en&output=json&"+tt.query)

			var resp models.LocateResponse
			if err := json.Unmarshal([]byte(body), &resp); err != nil {
				t.Fatalf("unmarshal error = %v (body %s)", err, body)
			}
			if resp.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %q, want %q", resp.Outcome, tt.wantOutcome)
			}
			got := ""
			if resp.Location != nil {
				got = resp.Location.CallNo
			}
			if got != tt.wantCallNo {
				t.Errorf("location = %q, want %q", got, tt.wantCallNo)
			}
		})
	}
}
