package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/lvillar/badgekit"
	"github.com/lvillar/badgekit/fields"
)

const templateYAML = `
name: Attendee
page:
  widthIn: 4
  heightIn: 6
  foldOverEnabled: true
elements:
  - type: text
    id: name
    x: 0.5
    y: 0.5
    width: 3
    height: 0.5
    content: "{{First Name}} {{last_name}}"
    fontSize: 18
  - type: text
    id: size
    x: 0.5
    y: 4
    width: 3
    height: 0.5
    content: "Shirt {{shirt}}"
`

func TestReadCSVRecords(t *testing.T) {
	in := "\ufefffirstName, lastName,customFields.Shirt\nAda,Lovelace,M\nGrace,,\n"
	got, err := readCSVRecords(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readCSVRecords: %v", err)
	}
	want := []fields.Record{
		{Standard: map[string]string{"firstName": "Ada", "lastName": "Lovelace"}, Custom: map[string]string{"Shirt": "M"}},
		{Standard: map[string]string{"firstName": "Grace"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVRecordsErrors(t *testing.T) {
	for _, in := range []string{"", "a,b\n1,2,3\n"} {
		if _, err := readCSVRecords(strings.NewReader(in)); err == nil {
			t.Errorf("readCSVRecords(%q) succeeded", in)
		}
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("BADGEKIT_FONT", "Times")
	t.Setenv("BADGEKIT_MAX_IMAGE_DIM", "0")
	t.Setenv("BADGEKIT_LOG_LEVEL", "debug")
	cfg, err := loadEnv()
	if err != nil {
		t.Fatalf("loadEnv: %v", err)
	}
	if cfg.font != "Times" || cfg.maxImageDim != 0 || cfg.logLevel != logrus.DebugLevel {
		t.Errorf("cfg = %+v", cfg)
	}
	if n := len(cfg.options()); n != 2 {
		t.Errorf("got %d options, want 2", n)
	}

	t.Setenv("BADGEKIT_MAX_IMAGE_DIM", "big")
	if _, err := loadEnv(); err == nil {
		t.Errorf("bad BADGEKIT_MAX_IMAGE_DIM accepted")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.env")
	bad := filepath.Join(dir, "bad.env")
	if err := os.WriteFile(good, []byte("BADGEKIT_TEST_FONT=Courier\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("BADGEKIT-FONT=Times\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BADGEKIT_TEST_FONT", "")
	os.Unsetenv("BADGEKIT_TEST_FONT")

	log, hook := test.NewNullLogger()
	loadDotEnv(log, good)
	loadDotEnv(log, filepath.Join(dir, "missing.env"))
	if n := len(hook.AllEntries()); n != 0 {
		t.Errorf("got %d log entries for a valid and a missing file", n)
	}
	if got := os.Getenv("BADGEKIT_TEST_FONT"); got != "Courier" {
		t.Errorf("BADGEKIT_TEST_FONT = %q", got)
	}

	loadDotEnv(log, bad)
	last := hook.LastEntry()
	if last == nil || last.Level != logrus.WarnLevel {
		t.Fatalf("malformed file not reported: %+v", last)
	}
}

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-template", "t.json", "-sheet", "a4", "-crop"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if o.template != "t.json" || o.out != "badges.pdf" || !o.crop {
		t.Errorf("options = %+v", o)
	}
	if _, err := parseFlags(nil); err == nil {
		t.Errorf("missing -template accepted")
	}
}

func writeInputs(t *testing.T) (dir, tpl, records string) {
	t.Helper()
	dir = t.TempDir()
	tpl = filepath.Join(dir, "attendee.yaml")
	records = filepath.Join(dir, "contacts.csv")
	if err := os.WriteFile(tpl, []byte(templateYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	csv := "firstName,lastName,customFields.shirt\nAda,Lovelace,M\nGrace,Hopper,S\nAlan,Turing,L\n"
	if err := os.WriteFile(records, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, tpl, records
}

func TestRunWritesPDF(t *testing.T) {
	dir, tpl, records := writeInputs(t)
	out := filepath.Join(dir, "badges.pdf")
	log, hook := test.NewNullLogger()

	o := options{template: tpl, records: records, out: out, sheet: "letter", crop: true, proof: "PROOF"}
	if err := run(context.Background(), o, log, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF")
	}
	last := hook.LastEntry()
	if last == nil || last.Data["badges"] != 3 {
		t.Errorf("summary entry = %+v", last)
	}
}

func TestRunPreview(t *testing.T) {
	_, tpl, records := writeInputs(t)
	log, _ := test.NewNullLogger()

	var out bytes.Buffer
	o := options{template: tpl, records: records, preview: true, mode: "design"}
	if err := run(context.Background(), o, log, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	var previews []badgekit.Preview
	if err := json.Unmarshal(out.Bytes(), &previews); err != nil {
		t.Fatalf("decoding previews: %v", err)
	}
	var got []string
	for _, p := range previews {
		got = append(got, p.Elements[0].ResolvedContent+" / "+p.Elements[1].ResolvedContent)
	}
	want := []string{"Ada Lovelace / Shirt M", "Grace Hopper / Shirt S", "Alan Turing / Shirt L"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("previews mismatch (-want +got):\n%s", diff)
	}
	if previews[0].Elements[1].Mirrored {
		t.Errorf("design mode mirrored the back face")
	}
}

func TestRunErrors(t *testing.T) {
	_, tpl, records := writeInputs(t)
	log, _ := test.NewNullLogger()
	for name, o := range map[string]options{
		"missing template": {template: "nope.json"},
		"bad sheet":        {template: tpl, records: records, sheet: "tabloid", out: filepath.Join(t.TempDir(), "x.pdf")},
		"bad mode":         {template: tpl, records: records, preview: true, mode: "sideways"},
	} {
		if err := run(context.Background(), o, log, io.Discard); err == nil {
			t.Errorf("%s: run succeeded", name)
		}
	}
}
