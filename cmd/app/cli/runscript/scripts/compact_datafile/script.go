package script_compact_datafile

import (
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/felixge/fgprof"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/urfave/cli/v2"
)

// run rewrites the mirror in place: entries without an id, with a duplicate
// id, or that are not JSON objects are dropped, and the remaining document
// is written back compacted. The in-memory store reloads from the rewritten
// file afterwards.
func run(ctx *cli.Context, deps CommandDeps) error {
	http.DefaultServeMux.Handle("/debug/fgprof", fgprof.Handler())
	go func() {
		log.Print(http.ListenAndServe("127.0.0.1:6060", nil))
	}()

	log.Info().Str("path", deps.DataFile.Path()).Msg("running script")

	content, err := deps.DataFile.Read()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info().Msg("data file does not exist, nothing to compact")
			return nil
		}
		return errors.Wrap(err, "failed to read data file")
	}

	parsed := gjson.ParseBytes(content)
	if !parsed.IsArray() {
		return errors.New("data file is not a JSON array; refusing to rewrite it")
	}

	var (
		kept    = []byte(`[]`)
		seen    = map[string]struct{}{}
		dropped int
	)
	for _, entry := range parsed.Array() {
		if !entry.IsObject() {
			dropped++
			continue
		}

		id := entry.Get("id").String()
		if id == "" {
			dropped++
			continue
		}
		if _, ok := seen[id]; ok {
			log.Warn().Str("reportId", id).Msg("dropping duplicate entry")
			dropped++
			continue
		}
		seen[id] = struct{}{}

		kept, err = sjson.SetRawBytesOptions(kept, "-1", []byte(entry.Raw), &sjson.Options{Optimistic: true})
		if err != nil {
			return errors.Wrapf(err, "failed to append entry %s", id)
		}
	}

	if err := deps.DataFile.WriteAtomic(kept); err != nil {
		return errors.Wrap(err, "failed to rewrite data file")
	}

	if err := deps.ReportRepo.Reload(); err != nil {
		return errors.Wrap(err, "failed to reload store from rewritten data file")
	}

	log.Info().
		Int("kept", len(seen)).
		Int("dropped", dropped).
		Msg("script finished")

	return nil
}
