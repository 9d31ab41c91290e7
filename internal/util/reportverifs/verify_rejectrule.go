package reportverifs

import (
	"context"
	"time"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"golang.org/x/mod/semver"

	"github.com/reporthub/backend/internal/app/appconfig"
	"github.com/reporthub/backend/internal/model/types"
	"github.com/reporthub/backend/internal/pkg/rherr"
)

// RejectRuleVerifier evaluates operator-supplied expr programs against each
// incoming task. An empty rule list disables the verifier.
type RejectRuleVerifier struct {
	rules []compiledRule
}

type compiledRule struct {
	source  string
	program *vm.Program
}

// ensure RejectRuleVerifier conforms to Verifier
var _ Verifier = (*RejectRuleVerifier)(nil)

// RuleEnv is the environment a reject rule expression evaluates in.
type RuleEnv struct {
	Executor      string  `json:"executor"`
	Version       string  `json:"version"`
	Passes        int64   `json:"passes"`
	Fails         int64   `json:"fails"`
	Grade         string  `json:"grade"`
	Duration      float64 `json:"duration"`
	SourceAddress string  `json:"sourceAddress"`
}

func (RuleEnv) SemVerCompare(a, b string) int {
	return semver.Compare(a, b)
}

// NewRejectRuleVerifier compiles the configured rules once. A rule that does
// not compile is logged and skipped rather than failing startup, so one bad
// rule cannot take ingestion down with it.
func NewRejectRuleVerifier(conf *appconfig.Config) *RejectRuleVerifier {
	rules := make([]compiledRule, 0, len(conf.RejectRules))
	for _, source := range conf.RejectRules {
		program, err := expr.Compile(source, expr.Env(RuleEnv{}))
		if err != nil {
			log.Error().
				Str("evt.name", "verifier.reject_rule.compile_error").
				Str("reject_rule.expr", source).
				Err(err).
				Msg("failed to compile reject rule, skipping it")
			continue
		}

		rules = append(rules, compiledRule{
			source:  source,
			program: program,
		})
	}

	return &RejectRuleVerifier{
		rules: rules,
	}
}

func (d *RejectRuleVerifier) Name() string {
	return "reject_rule"
}

func (d *RejectRuleVerifier) Verify(ctx context.Context, task *types.ReportTask) *Rejection {
	if len(d.rules) == 0 {
		return nil
	}

	env := newRuleEnv(task)

	start := time.Now()
	defer func() {
		if l := log.Trace(); l.Enabled() {
			l.Dur("duration", time.Since(start)).
				Msg("reject rule(s) evaluated")
		}
	}()

	for i, rule := range d.rules {
		result, err := expr.Run(rule.program, env)
		if err != nil {
			log.Error().
				Str("evt.name", "verifier.reject_rule.expr_eval_error").
				Interface("env", env).
				Str("reject_rule.expr", rule.source).
				Err(err).
				Msg("failed to evaluate reject rule")
			continue
		}

		if d.resultHandler(result) {
			log.Warn().
				Str("evt.name", "verifier.reject_rule.rejected").
				Interface("env", env).
				Str("reject_rule.expr", rule.source).
				Msg("reject rule matched, rejecting report")

			return Reject(rherr.ErrRejectedByRule.Msg("reject rule %d matched", i))
		}

		if l := log.Trace(); l.Enabled() {
			l.Interface("env", env).
				Str("reject_rule.expr", rule.source).
				Msg("reject rule verification passed")
		}
	}

	return nil
}

func newRuleEnv(task *types.ReportTask) RuleEnv {
	body := gjson.ParseBytes(task.Raw)

	return RuleEnv{
		Executor:      body.Get("executor.name").String(),
		Version:       body.Get("executor.version").String(),
		Passes:        body.Get("passes").Int(),
		Fails:         body.Get("fails").Int(),
		Grade:         body.Get("grade").String(),
		Duration:      body.Get("duration").Float(),
		SourceAddress: task.SourceAddress,
	}
}

func (d *RejectRuleVerifier) resultHandler(result any) bool {
	switch r := result.(type) {
	case bool:
		return r
	default:
		log.Error().Msgf("reject rule expr result type %T is not supported", result)
		return false
	}
}
