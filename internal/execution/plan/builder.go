package plan

import (
	"strings"

	"github.com/animus-labs/headless-bridge/internal/domain"
)

// Named slots of the plan template. Values are substituted verbatim in a
// single pass, so slot markers inside caller values are never expanded.
const (
	SlotRepoURL        = "{{REPO_URL}}"
	SlotFailureDetails = "{{FAILURE_DETAILS}}"
	SlotRunID          = "{{RUN_ID}}"
	SlotAKURL          = "{{AK_URL}}"
	SlotAKHash         = "{{AK_HASH}}"
)

// ArtifactSubcommand is the fixed subcommand the verified artifact is invoked with.
const ArtifactSubcommand = "tck"

// StartMarker is the first line of every plan.
const StartMarker = `echo "--- STARTING GKE EXECUTION ---"`

const planTemplate = StartMarker + `
echo "Current User: $(id -un)"
echo "Current Dir: $(pwd)"
cat <<'TASK_CONTEXT'
You are an engineer.
REPO: ` + SlotRepoURL + `
ERROR: ` + SlotFailureDetails + `
TASK_CONTEXT
RUN_ID='` + SlotRunID + `'
echo "Run ID: $RUN_ID"
curl -fsSL -o ak '` + SlotAKURL + `' && chmod +x ak
EXPECTED_SHA='` + SlotAKHash + `'
if command -v sha256sum >/dev/null 2>&1; then
  ACTUAL_SHA="$(sha256sum ak | cut -d ' ' -f 1)"
else
  ACTUAL_SHA="$(shasum -a 256 ak | cut -d ' ' -f 1)"
fi
if [ -z "$ACTUAL_SHA" ] || [ "$(printf '%s' "$ACTUAL_SHA" | tr '[:upper:]' '[:lower:]')" != "$(printf '%s' "$EXPECTED_SHA" | tr '[:upper:]' '[:lower:]')" ]; then
  echo "SHA mismatch for run $RUN_ID: expected '$EXPECTED_SHA', got '$ACTUAL_SHA'" >&2
  exit 1
fi
./ak ` + ArtifactSubcommand + `
`

// BuildPlan renders the shell plan handed to the agent for one run.
//
// The plan echoes its execution context, embeds the task context, fetches
// the artifact from AKURL and refuses to run it unless its SHA-256 matches
// AKHash (compared case-insensitively). AKHash is not checked for format
// here: a malformed or empty hash simply fails the comparison.
func BuildPlan(req domain.FixRequest, runID string) string {
	r := strings.NewReplacer(
		SlotRepoURL, req.RepoURL,
		SlotFailureDetails, req.FailureDetails,
		SlotRunID, runID,
		SlotAKURL, req.AKURL,
		SlotAKHash, req.AKHash,
	)
	return r.Replace(planTemplate)
}
