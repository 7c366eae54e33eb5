package repo

import (
	"context"
	"testing"
	"time"

	"claimboard/internal/platform/store/kv"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func backends(t *testing.T) map[string]Repo {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return map[string]Repo{
		"memory": NewKV(kv.NewMemory(time.Minute)),
		"redis":  NewKV(kv.NewRedis(rc)),
	}
}

func TestKV_IncrementAndGet(t *testing.T) {
	for name, r := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, ok, err := r.Get(ctx, 7); err != nil || ok {
				t.Fatalf("fresh get: ok=%v err=%v", ok, err)
			}
			if n, err := r.Increment(ctx, 7, 13); err != nil || n != 13 {
				t.Fatalf("first increment: n=%d err=%v", n, err)
			}
			if n, err := r.Increment(ctx, 7, 6); err != nil || n != 19 {
				t.Fatalf("second increment: n=%d err=%v", n, err)
			}
			n, ok, err := r.Get(ctx, 7)
			if err != nil || !ok || n != 19 {
				t.Fatalf("get: n=%d ok=%v err=%v", n, ok, err)
			}
		})
	}
}

func TestKV_TopOrdersByScoreThenID(t *testing.T) {
	for name, r := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for id, pts := range map[uint64]int64{30: 5, 10: 25, 20: 5, 40: 1} {
				if _, err := r.Increment(ctx, id, pts); err != nil {
					t.Fatal(err)
				}
			}
			got, err := r.Top(ctx, 3)
			if err != nil {
				t.Fatal(err)
			}
			want := []uint64{10, 20, 30}
			if len(got) != len(want) {
				t.Fatalf("len=%d want %d", len(got), len(want))
			}
			for i, id := range want {
				if got[i].Participant != id {
					t.Fatalf("pos %d: got %d want %d (%+v)", i, got[i].Participant, id, got)
				}
			}
		})
	}
}

func TestKV_Clear(t *testing.T) {
	for name, r := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, _ = r.Increment(ctx, 1, 1)
			_, _ = r.Increment(ctx, 2, 3)
			n, err := r.Clear(ctx)
			if err != nil || n != 2 {
				t.Fatalf("clear: n=%d err=%v", n, err)
			}
			top, err := r.Top(ctx, 10)
			if err != nil || len(top) != 0 {
				t.Fatalf("after clear: %+v err=%v", top, err)
			}
		})
	}
}

func TestKV_TopSkipsForeignFields(t *testing.T) {
	c := kv.NewMemory(time.Minute)
	ctx := context.Background()
	if _, err := c.HIncrBy(ctx, "leaderboard", "not-an-id", 9); err != nil {
		t.Fatal(err)
	}
	r := NewKV(c)
	if _, err := r.Increment(ctx, 5, 2); err != nil {
		t.Fatal(err)
	}
	top, err := r.Top(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Participant != 5 {
		t.Fatalf("unexpected top: %+v", top)
	}
}
