package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/milewire/RAN-copilot/pkg/models"
)

func TestCreateAndGet(t *testing.T) {
	s := New()
	info := s.Create("cluster-north")

	if info.ID == "" {
		t.Fatal("workspace ID is empty")
	}
	if info.Name != "cluster-north" {
		t.Errorf("name = %q, want cluster-north", info.Name)
	}

	ws, err := s.Get(info.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ws.ID != info.ID || ws.Name != "cluster-north" {
		t.Errorf("workspace = %+v", ws)
	}
}

func TestGetUnknown(t *testing.T) {
	s := New()
	if _, err := s.Get("missing"); !errors.Is(err, models.ErrWorkspaceNotFound) {
		t.Errorf("Get() error = %v, want ErrWorkspaceNotFound", err)
	}
}

func TestAppendAndCounts(t *testing.T) {
	s := New()
	info := s.Create("ws")

	n, err := s.AppendAlarms(info.ID, []models.AlarmRecord{{Severity: models.SeverityCritical}})
	if err != nil || n != 1 {
		t.Fatalf("AppendAlarms() = %d, %v", n, err)
	}
	n, err = s.AppendAlarms(info.ID, []models.AlarmRecord{{Severity: models.SeverityMinor}, {Severity: models.SeverityMajor}})
	if err != nil || n != 3 {
		t.Fatalf("second AppendAlarms() = %d, %v", n, err)
	}

	if _, err := s.AppendKPIs(info.ID, []models.KPISample{{KPI: "SINR_Avg", Value: 12}}); err != nil {
		t.Fatalf("AppendKPIs() error: %v", err)
	}

	ws, err := s.Get(info.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	counts := ws.Info().Counts
	if counts.Alarms != 3 || counts.KPIs != 1 || counts.Attach != 0 || counts.Backhaul != 0 {
		t.Errorf("counts = %+v", counts)
	}
}

func TestAppendUnknownWorkspace(t *testing.T) {
	s := New()
	if _, err := s.AppendAttach("missing", []models.AttachRecord{{IMSI: "001"}}); !errors.Is(err, models.ErrWorkspaceNotFound) {
		t.Errorf("AppendAttach() error = %v, want ErrWorkspaceNotFound", err)
	}
}

// Get hands out a copy: mutating it must not leak into the store.
func TestGetReturnsIsolatedCopy(t *testing.T) {
	s := New()
	info := s.Create("ws")
	if _, err := s.AppendKPIs(info.ID, []models.KPISample{{KPI: "SINR_Avg", Value: 10}}); err != nil {
		t.Fatal(err)
	}

	ws, _ := s.Get(info.ID)
	ws.KPIs[0].Value = 99
	ws.KPIs = append(ws.KPIs, models.KPISample{KPI: "BLER_P95", Value: 1})

	again, _ := s.Get(info.ID)
	if len(again.KPIs) != 1 || again.KPIs[0].Value != 10 {
		t.Errorf("store mutated through copy: %+v", again.KPIs)
	}
}

func TestDelete(t *testing.T) {
	s := New()
	info := s.Create("ws")

	if err := s.Delete(info.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := s.Delete(info.ID); !errors.Is(err, models.ErrWorkspaceNotFound) {
		t.Errorf("second Delete() error = %v, want ErrWorkspaceNotFound", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := New()
	a := s.Create("first")
	b := s.Create("second")

	// Force distinct creation times.
	wsA, _ := s.Get(a.ID)
	wsB, _ := s.Get(b.ID)
	wsB.Created = wsA.Created.Add(1)
	s.Restore(wsB)

	infos := s.List()
	if len(infos) != 2 {
		t.Fatalf("List() returned %d workspaces", len(infos))
	}
	if infos[0].ID != b.ID {
		t.Errorf("List()[0] = %q, want newest %q", infos[0].ID, b.ID)
	}
}

func TestRestoreAssignsMissingID(t *testing.T) {
	s := New()
	info := s.Restore(&models.Workspace{Name: "imported"})
	if info.ID == "" {
		t.Error("Restore() left ID empty")
	}
	if _, err := s.Get(info.ID); err != nil {
		t.Errorf("Get() after Restore() error: %v", err)
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := New()
	info := s.Create("ws")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AppendKPIs(info.ID, []models.KPISample{{KPI: "PRB_Utilization_Avg", Value: 50}})
		}()
	}
	wg.Wait()

	ws, _ := s.Get(info.ID)
	if len(ws.KPIs) != 50 {
		t.Errorf("KPIs = %d, want 50", len(ws.KPIs))
	}
}
