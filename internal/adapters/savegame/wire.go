package savegame

import (
	"fmt"
	"math"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/base"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// Field numbers. Never renumber; append new fields instead.
const (
	snapID      protowire.Number = 1
	snapName    protowire.Number = 2
	snapHour    protowire.Number = 3
	snapCredits protowire.Number = 4
	snapBase    protowire.Number = 5
	snapQueue   protowire.Number = 6

	baseIndex         protowire.Number = 1
	baseID            protowire.Number = 2
	baseName          protowire.Number = 3
	baseCommandCentre protowire.Number = 4
	baseWorkshops     protowire.Number = 5
	baseUnderAttack   protowire.Number = 6
	baseEmployee      protowire.Number = 7
	baseCapacity      protowire.Number = 8
	baseStorage       protowire.Number = 9
	baseAircraft      protowire.Number = 10

	pairKey   protowire.Number = 1
	pairValue protowire.Number = 2
	pairExtra protowire.Number = 3

	aircraftID       protowire.Number = 1
	aircraftTemplate protowire.Number = 2
	aircraftName     protowire.Number = 3
	aircraftSize     protowire.Number = 4

	queueBaseID protowire.Number = 1
	queueOrder  protowire.Number = 2

	orderID                protowire.Number = 1
	orderItemID            protowire.Number = 2
	orderAmount            protowire.Number = 3
	orderPercentDone       protowire.Number = 4
	orderIsManufacture     protowire.Number = 5
	orderAircraftID        protowire.Number = 6
	orderMaterialsReserved protowire.Number = 7
	orderCreditBlocked     protowire.Number = 8
	orderSpaceBlocked      protowire.Number = 9
	orderUnresolvedNoticed protowire.Number = 10
)

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendInt(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(v))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func marshalSnapshot(s campaign.Snapshot) []byte {
	var b []byte
	b = appendString(b, snapID, s.ID)
	b = appendString(b, snapName, s.Name)
	b = appendInt(b, snapHour, s.Hour)
	b = appendInt(b, snapCredits, int64(s.Credits))
	for _, st := range s.Bases {
		b = appendMessage(b, snapBase, marshalBase(st))
	}
	for _, q := range s.Queues {
		b = appendMessage(b, snapQueue, marshalQueue(q))
	}
	return b
}

func marshalBase(s base.State) []byte {
	var b []byte
	b = appendInt(b, baseIndex, int64(s.Index))
	b = appendString(b, baseID, s.ID)
	b = appendString(b, baseName, s.Name)
	b = appendBool(b, baseCommandCentre, s.CommandCentre)
	b = appendInt(b, baseWorkshops, int64(s.Workshops))
	b = appendBool(b, baseUnderAttack, s.UnderAttack)

	for _, k := range sortedKeys(s.Employees) {
		var p []byte
		p = appendString(p, pairKey, string(k))
		p = appendInt(p, pairValue, int64(s.Employees[k]))
		b = appendMessage(b, baseEmployee, p)
	}
	for _, k := range sortedKeys(s.Capacities) {
		var p []byte
		p = appendString(p, pairKey, string(k))
		p = appendInt(p, pairValue, int64(s.Capacities[k].Max))
		p = appendInt(p, pairExtra, int64(s.Capacities[k].Current))
		b = appendMessage(b, baseCapacity, p)
	}
	for _, k := range sortedKeys(s.Storage) {
		var p []byte
		p = appendString(p, pairKey, k)
		p = appendInt(p, pairValue, int64(s.Storage[k]))
		b = appendMessage(b, baseStorage, p)
	}
	for _, a := range s.Aircraft {
		var p []byte
		p = appendString(p, aircraftID, a.ID)
		p = appendString(p, aircraftTemplate, a.TemplateID)
		p = appendString(p, aircraftName, a.Name)
		p = appendString(p, aircraftSize, string(a.Size))
		b = appendMessage(b, baseAircraft, p)
	}
	return b
}

func marshalQueue(q production.BaseQueueRecord) []byte {
	var b []byte
	b = appendString(b, queueBaseID, q.BaseID)
	for _, o := range q.Orders {
		var p []byte
		p = appendString(p, orderID, o.OrderID)
		p = appendString(p, orderItemID, o.ItemID)
		p = appendInt(p, orderAmount, int64(o.Amount))
		p = protowire.AppendTag(p, orderPercentDone, protowire.Fixed64Type)
		p = protowire.AppendFixed64(p, math.Float64bits(o.PercentDone))
		p = appendBool(p, orderIsManufacture, o.IsManufacture)
		p = appendString(p, orderAircraftID, o.AircraftID)
		p = appendBool(p, orderMaterialsReserved, o.MaterialsReserved)
		p = appendBool(p, orderCreditBlocked, o.CreditBlocked)
		p = appendBool(p, orderSpaceBlocked, o.SpaceBlocked)
		p = appendBool(p, orderUnresolvedNoticed, o.UnresolvedNoticed)
		b = appendMessage(b, queueOrder, p)
	}
	return b
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// field is one decoded tag/value pair
type field struct {
	num    protowire.Number
	typ    protowire.Type
	varint uint64
	fixed  uint64
	bytes  []byte
}

func (f field) int() int64 { return protowire.DecodeZigZag(f.varint) }
func (f field) bool() bool { return protowire.DecodeBool(f.varint) }
func (f field) str() string { return string(f.bytes) }
func (f field) float() float64 { return math.Float64frombits(f.fixed) }

// walk calls fn for every field of a message; unknown wire types are skipped
func walk(b []byte, fn func(field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("savegame: malformed tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(b)
		case protowire.Fixed64Type:
			f.fixed, n = protowire.ConsumeFixed64(b)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return fmt.Errorf("savegame: malformed field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalSnapshot(b []byte) (*campaign.Snapshot, error) {
	s := &campaign.Snapshot{}
	err := walk(b, func(f field) error {
		switch f.num {
		case snapID:
			s.ID = f.str()
		case snapName:
			s.Name = f.str()
		case snapHour:
			s.Hour = f.int()
		case snapCredits:
			s.Credits = int(f.int())
		case snapBase:
			st, err := unmarshalBase(f.bytes)
			if err != nil {
				return err
			}
			s.Bases = append(s.Bases, st)
		case snapQueue:
			q, err := unmarshalQueue(f.bytes)
			if err != nil {
				return err
			}
			s.Queues = append(s.Queues, q)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.ID == "" {
		return nil, fmt.Errorf("savegame: campaign id missing")
	}
	return s, nil
}

type pair struct {
	key   string
	value int
	extra int
}

func unmarshalPair(b []byte) (pair, error) {
	var p pair
	err := walk(b, func(f field) error {
		switch f.num {
		case pairKey:
			p.key = f.str()
		case pairValue:
			p.value = int(f.int())
		case pairExtra:
			p.extra = int(f.int())
		}
		return nil
	})
	return p, err
}

func unmarshalBase(b []byte) (base.State, error) {
	s := base.State{
		Employees:  map[production.EmployeeType]int{},
		Capacities: map[production.CapacityKind]production.Capacity{},
		Storage:    map[string]int{},
	}
	err := walk(b, func(f field) error {
		switch f.num {
		case baseIndex:
			s.Index = int(f.int())
		case baseID:
			s.ID = f.str()
		case baseName:
			s.Name = f.str()
		case baseCommandCentre:
			s.CommandCentre = f.bool()
		case baseWorkshops:
			s.Workshops = int(f.int())
		case baseUnderAttack:
			s.UnderAttack = f.bool()
		case baseEmployee, baseCapacity, baseStorage:
			p, err := unmarshalPair(f.bytes)
			if err != nil {
				return err
			}
			switch f.num {
			case baseEmployee:
				s.Employees[production.EmployeeType(p.key)] = p.value
			case baseCapacity:
				s.Capacities[production.CapacityKind(p.key)] = production.Capacity{Max: p.value, Current: p.extra}
			default:
				s.Storage[p.key] = p.value
			}
		case baseAircraft:
			a, err := unmarshalAircraft(f.bytes)
			if err != nil {
				return err
			}
			s.Aircraft = append(s.Aircraft, a)
		}
		return nil
	})
	return s, err
}

func unmarshalAircraft(b []byte) (base.Aircraft, error) {
	var a base.Aircraft
	err := walk(b, func(f field) error {
		switch f.num {
		case aircraftID:
			a.ID = f.str()
		case aircraftTemplate:
			a.TemplateID = f.str()
		case aircraftName:
			a.Name = f.str()
		case aircraftSize:
			a.Size = production.HangarSize(f.str())
		}
		return nil
	})
	return a, err
}

func unmarshalQueue(b []byte) (production.BaseQueueRecord, error) {
	var q production.BaseQueueRecord
	err := walk(b, func(f field) error {
		switch f.num {
		case queueBaseID:
			q.BaseID = f.str()
		case queueOrder:
			o, err := unmarshalOrder(f.bytes)
			if err != nil {
				return err
			}
			q.Orders = append(q.Orders, o)
		}
		return nil
	})
	return q, err
}

func unmarshalOrder(b []byte) (production.QueueRecord, error) {
	var o production.QueueRecord
	err := walk(b, func(f field) error {
		switch f.num {
		case orderID:
			o.OrderID = f.str()
		case orderItemID:
			o.ItemID = f.str()
		case orderAmount:
			o.Amount = int(f.int())
		case orderPercentDone:
			o.PercentDone = f.float()
		case orderIsManufacture:
			o.IsManufacture = f.bool()
		case orderAircraftID:
			o.AircraftID = f.str()
		case orderMaterialsReserved:
			o.MaterialsReserved = f.bool()
		case orderCreditBlocked:
			o.CreditBlocked = f.bool()
		case orderSpaceBlocked:
			o.SpaceBlocked = f.bool()
		case orderUnresolvedNoticed:
			o.UnresolvedNoticed = f.bool()
		}
		return nil
	})
	return o, err
}
