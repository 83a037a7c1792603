package combat

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// EntityView is everything a renderer may know about one entity after a tick.
type EntityView struct {
	ID          string         `json:"id" msgpack:"id"`
	Kind        string         `json:"kind" msgpack:"kind"`
	Archetype   string         `json:"archetype,omitempty" msgpack:"archetype,omitempty"`
	X           float64        `json:"x" msgpack:"x"`
	Y           float64        `json:"y" msgpack:"y"`
	Width       float64        `json:"width" msgpack:"width"`
	Height      float64        `json:"height" msgpack:"height"`
	Health      int            `json:"health" msgpack:"health"`
	MaxHealth   int            `json:"max_health" msgpack:"max_health"`
	IsEnemy     bool           `json:"is_enemy" msgpack:"is_enemy"`
	IsMoving    bool           `json:"is_moving,omitempty" msgpack:"is_moving,omitempty"`
	IsAttacking bool           `json:"is_attacking,omitempty" msgpack:"is_attacking,omitempty"`
	Proficiency int            `json:"proficiency,omitempty" msgpack:"proficiency,omitempty"`
	Levels      map[string]int `json:"levels,omitempty" msgpack:"levels,omitempty"`
}

type Snapshot struct {
	T      float64      `json:"t" msgpack:"t"`
	Status string       `json:"status" msgpack:"status"`
	Bases  []EntityView `json:"bases" msgpack:"bases"`
	Units  []EntityView `json:"units" msgpack:"units"`
}

func viewOf(e Entity) EntityView {
	p := e.Pos()
	return EntityView{
		ID:        e.ID(),
		X:         p.X,
		Y:         p.Y,
		Width:     e.Width(),
		Height:    e.Height(),
		Health:    e.Health(),
		MaxHealth: e.MaxHealth(),
		IsEnemy:   e.IsEnemy(),
	}
}

func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		T:      w.now,
		Status: w.status.String(),
		Units:  make([]EntityView, 0, len(w.units)),
	}
	for _, b := range []*Base{w.player, w.enemy} {
		v := viewOf(b)
		v.Kind = "base"
		v.Levels = b.levels.Levels()
		s.Bases = append(s.Bases, v)
	}
	for _, u := range w.units {
		v := viewOf(u)
		v.Kind = "unit"
		v.Archetype = u.archetype
		v.IsMoving = u.moving
		v.IsAttacking = u.attacking
		v.Proficiency = u.proficiency
		s.Units = append(s.Units, v)
	}
	return s
}

func EncodeSnapshot(s Snapshot) ([]byte, error) {
	return msgpack.Marshal(&s)
}

func DecodeSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	err := msgpack.Unmarshal(b, &s)
	return s, err
}

// FrameWriter streams snapshots back to back; FrameReader reads them in order.
type FrameWriter struct {
	enc *msgpack.Encoder
	n   int
}

func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{enc: msgpack.NewEncoder(w)}
}

func (fw *FrameWriter) Write(s Snapshot) error {
	if err := fw.enc.Encode(&s); err != nil {
		return err
	}
	fw.n++
	return nil
}

func (fw *FrameWriter) Frames() int { return fw.n }

type FrameReader struct {
	dec *msgpack.Decoder
}

func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{dec: msgpack.NewDecoder(r)}
}

// Next returns io.EOF once the stream is exhausted.
func (fr *FrameReader) Next() (Snapshot, error) {
	var s Snapshot
	err := fr.dec.Decode(&s)
	return s, err
}
