package reportverifs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reporthub/backend/internal/app/appconfig"
	"github.com/reporthub/backend/internal/model/types"
)

func testTask(raw string) *types.ReportTask {
	return &types.ReportTask{
		TaskID:        "testtask",
		Raw:           []byte(raw),
		SourceAddress: "127.0.0.1",
		ReceivedAt:    time.Now(),
	}
}

func newTestVerifiers(rules ...string) *ReportVerifiers {
	conf := &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			RejectRules: appconfig.RejectRuleList(rules),
		},
	}

	return NewReportVerifier(
		NewShapeVerifier(),
		NewPlausibilityVerifier(),
		NewTimestampVerifier(),
		NewRejectRuleVerifier(conf),
	)
}

func validBody(passes, fails int) string {
	return fmt.Sprintf(`{"executor":{"name":"pytest","version":"7.4.0"},"system":{"os":"linux"},"categories":[],"passes":%d,"fails":%d}`, passes, fails)
}

func TestShapeVerifier(t *testing.T) {
	cases := []struct {
		name string
		body string
		code string
	}{
		{"valid", validBody(10, 2), ""},
		{"empty body", ``, "MALFORMED_PAYLOAD"},
		{"not json", `not json at all`, "MALFORMED_PAYLOAD"},
		{"array body", `[]`, "MALFORMED_PAYLOAD"},
		{"missing executor", `{"system":{},"categories":[],"passes":1,"fails":0}`, "MISSING_EXECUTOR"},
		{"empty executor name", `{"executor":{"name":""},"system":{},"categories":[],"passes":1,"fails":0}`, "MISSING_EXECUTOR"},
		{"numeric executor name", `{"executor":{"name":42},"system":{},"categories":[],"passes":1,"fails":0}`, "MISSING_EXECUTOR"},
		{"missing system", `{"executor":{"name":"x"},"categories":[],"passes":1,"fails":0}`, "MISSING_SYSTEM_INFO"},
		{"system not a mapping", `{"executor":{"name":"x"},"system":"linux","categories":[],"passes":1,"fails":0}`, "MISSING_SYSTEM_INFO"},
		{"missing categories", `{"executor":{"name":"x"},"system":{},"passes":1,"fails":0}`, "MISSING_CATEGORIES"},
		{"categories not a sequence", `{"executor":{"name":"x"},"system":{},"categories":{},"passes":1,"fails":0}`, "MISSING_CATEGORIES"},
		{"missing passes", `{"executor":{"name":"x"},"system":{},"categories":[],"fails":0}`, "MISSING_RESULTS"},
		{"missing fails", `{"executor":{"name":"x"},"system":{},"categories":[],"passes":1}`, "MISSING_RESULTS"},
		{"stringly passes", `{"executor":{"name":"x"},"system":{},"categories":[],"passes":"1","fails":0}`, "MISSING_RESULTS"},
	}

	verifier := NewShapeVerifier()

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			rejection := verifier.Verify(context.Background(), testTask(c.body))
			if c.code == "" {
				assert.Nil(t, rejection)
				return
			}

			require.NotNil(t, rejection)
			assert.Equal(t, c.code, rejection.Err.ErrorCode)
		})
	}
}

func TestPlausibilityVerifier(t *testing.T) {
	verifier := NewPlausibilityVerifier()

	cases := []struct {
		name     string
		body     string
		rejected bool
	}{
		{"plausible", validBody(10, 2), false},
		{"zero fails small passes", validBody(10, 0), false},
		{"at ceiling", validBody(1000, 0), false},
		{"above ceiling with fails", validBody(2000, 1), false},
		{"above ceiling zero fails", validBody(2000, 0), true},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			rejection := verifier.Verify(context.Background(), testTask(c.body))
			if !c.rejected {
				assert.Nil(t, rejection)
				return
			}

			require.NotNil(t, rejection)
			assert.Equal(t, "IMPLAUSIBLE_RESULTS", rejection.Err.ErrorCode)
		})
	}
}

func TestTimestampVerifier(t *testing.T) {
	verifier := NewTimestampVerifier()

	now := time.Now()

	cases := []struct {
		name     string
		asserted any
		rejected bool
	}{
		{"absent", nil, false},
		{"now", now.UnixMilli(), false},
		{"half hour ago", now.Add(-30 * time.Minute).UnixMilli(), false},
		{"half hour ahead", now.Add(30 * time.Minute).UnixMilli(), false},
		{"two hours ago", now.Add(-2 * time.Hour).UnixMilli(), true},
		{"two hours ahead", now.Add(2 * time.Hour).UnixMilli(), true},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			body := validBody(10, 2)
			if c.asserted != nil {
				body = fmt.Sprintf(`{"executor":{"name":"x"},"system":{},"categories":[],"passes":10,"fails":2,"timestamp":%d}`, c.asserted)
			}

			task := testTask(body)
			task.ReceivedAt = now

			rejection := verifier.Verify(context.Background(), task)
			if !c.rejected {
				assert.Nil(t, rejection)
				return
			}

			require.NotNil(t, rejection)
			assert.Equal(t, "TIMESTAMP_OUT_OF_BOUNDS", rejection.Err.ErrorCode)
		})
	}
}

func TestRejectRuleVerifier(t *testing.T) {
	t.Run("no rules accepts everything", func(t *testing.T) {
		verifier := NewRejectRuleVerifier(&appconfig.Config{})
		assert.Nil(t, verifier.Verify(context.Background(), testTask(validBody(10, 2))))
	})

	t.Run("matched rule rejects", func(t *testing.T) {
		verifiers := newTestVerifiers(`Executor == "banned-runner"`)

		body := `{"executor":{"name":"banned-runner"},"system":{},"categories":[],"passes":1,"fails":0}`
		violation := verifiers.Verify(context.Background(), testTask(body))

		require.NotNil(t, violation)
		assert.Equal(t, "reject_rule", violation.Name)
		assert.Equal(t, "REJECTED_BY_RULE", violation.Err.ErrorCode)
	})

	t.Run("unmatched rule passes", func(t *testing.T) {
		verifiers := newTestVerifiers(`Passes > 100 && Fails == 0`)

		violation := verifiers.Verify(context.Background(), testTask(validBody(10, 2)))
		assert.Nil(t, violation)
	})

	t.Run("semver helper", func(t *testing.T) {
		verifiers := newTestVerifiers(`SemVerCompare("v" + Version, "v1.0.0") < 0`)

		body := `{"executor":{"name":"x","version":"0.9.1"},"system":{},"categories":[],"passes":1,"fails":0}`
		violation := verifiers.Verify(context.Background(), testTask(body))

		require.NotNil(t, violation)
		assert.Equal(t, "REJECTED_BY_RULE", violation.Err.ErrorCode)
	})

	t.Run("invalid rule is skipped", func(t *testing.T) {
		verifiers := newTestVerifiers(`NoSuchField == 1`)

		violation := verifiers.Verify(context.Background(), testTask(validBody(10, 2)))
		assert.Nil(t, violation)
	})
}

func TestVerifiersShortCircuit(t *testing.T) {
	verifiers := newTestVerifiers()

	// the shape violation must win even though the payload is also implausible
	body := `{"system":{},"categories":[],"passes":2000,"fails":0}`
	violation := verifiers.Verify(context.Background(), testTask(body))

	require.NotNil(t, violation)
	assert.Equal(t, "shape", violation.Name)
	assert.Equal(t, "MISSING_EXECUTOR", violation.Err.ErrorCode)
}
