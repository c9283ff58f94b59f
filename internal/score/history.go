package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"math"
	"time"

	"git.lost.host/meutraa/strum/internal/game"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// History stores finished sessions in a sqlite database.
type History struct {
	db *sql.DB
}

const initStatement = `
create table if not exists scores
  (
	  id integer not null primary key,
	  sum text not null,
	  title text,
	  at integer not null,
	  tally blob not null
  );
create index if not exists scores_sum on scores(sum);
`

func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to open score database %s", path)
	}
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, errors.Wrap(err, "unable to create scores table")
	}
	return &History{db: db}, nil
}

func (h *History) Close() error {
	if nil == h.db {
		return nil
	}
	return h.db.Close()
}

// Sum identifies a song by its rows and timing, so renamed files keep their
// history.
func Sum(song *game.Song) string {
	hash := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(song.Tempo))
	hash.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(song.RowsPerMeasure))
	hash.Write(buf[:])
	for i := 0; i < song.Len(); i++ {
		r, _ := song.Row(i)
		b := game.SongLayout.EncodeByte(game.ControllerState{Lanes: r})
		hash.Write([]byte{b})
	}
	return base64.StdEncoding.EncodeToString(hash.Sum(nil))
}

func (h *History) Save(song *game.Song, tally Tally, at time.Time) error {
	data, err := json.Marshal(tally)
	if nil != err {
		return errors.Wrap(err, "unable to marshal tally")
	}
	_, err = h.db.Exec("insert into scores(sum, title, at, tally) values(?, ?, ?, ?)",
		Sum(song), song.Title, at.UnixMilli(), data)
	if nil != err {
		return errors.Wrap(err, "unable to save score")
	}
	return nil
}

// Load returns every stored session of the song, oldest first.
func (h *History) Load(song *game.Song) ([]Record, error) {
	rows, err := h.db.Query("select sum, at, tally from scores where sum = ? order by at, id", Sum(song))
	if nil != err {
		return nil, errors.Wrap(err, "unable to load scores")
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			r    Record
			at   int64
			data []byte
		)
		if err := rows.Scan(&r.Sum, &at, &data); nil != err {
			return nil, errors.Wrap(err, "unable to scan score")
		}
		if err := json.Unmarshal(data, &r.Tally); nil != err {
			return nil, errors.Wrap(err, "unable to unmarshal tally")
		}
		r.At = time.UnixMilli(at)
		records = append(records, r)
	}
	return records, errors.Wrap(rows.Err(), "unable to read scores")
}

// Best returns the best stored session, false if there is none.
func Best(records []Record) (Record, bool) {
	if len(records) == 0 {
		return Record{}, false
	}
	best := records[0]
	for _, r := range records[1:] {
		if r.Tally.Better(best.Tally) {
			best = r
		}
	}
	return best, true
}
