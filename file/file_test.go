package file_test

import (
	"io"
	"sort"
	"testing"

	"github.com/pdxgo/playdate/file"
	"github.com/pdxgo/playdate/host"
	pdtest "github.com/pdxgo/playdate/testing"
)

func newFS(t *testing.T) (*pdtest.Host, *file.FS) {
	t.Helper()
	h := pdtest.NewHost()
	return h, file.New(h)
}

func TestReadWriteRoundTrip(t *testing.T) {
	h, fs := newFS(t)

	if err := fs.WriteFile("save/slot0", []byte("state v1")); err != nil {
		t.Fatal(err)
	}
	got, err := fs.ReadFile("save/slot0")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "state v1" {
		t.Fatalf("ReadFile = %q", got)
	}
	if b, ok := h.FileContents("save/slot0"); !ok || string(b) != "state v1" {
		t.Fatalf("host contents = %q, %v", b, ok)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, fs := newFS(t)
	if _, err := fs.Open("nope", host.ModeRead); err == nil {
		t.Fatal("opening a missing file did not fail")
	}
}

func TestAppendMode(t *testing.T) {
	h, fs := newFS(t)
	h.AddFile("log.txt", []byte("one\n"))

	f, err := fs.Open("log.txt", host.ModeAppend)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("two\n")); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got, _ := fs.ReadFile("log.txt")
	if string(got) != "one\ntwo\n" {
		t.Fatalf("contents = %q", got)
	}
}

func TestSeekAndPartialRead(t *testing.T) {
	h, fs := newFS(t)
	h.AddFile("data.bin", []byte("abcdefgh"))

	f, err := fs.Open("data.bin", host.ModeRead)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if pos, err := f.Seek(2, io.SeekStart); err != nil || pos != 2 {
		t.Fatalf("Seek = %d, %v", pos, err)
	}
	buf := make([]byte, 3)
	if n, err := f.Read(buf); err != nil || n != 3 || string(buf) != "cde" {
		t.Fatalf("Read = %d, %v, %q", n, err, buf)
	}
	if pos, err := f.Seek(-2, io.SeekEnd); err != nil || pos != 6 {
		t.Fatalf("Seek end = %d, %v", pos, err)
	}
	rest, err := io.ReadAll(f)
	if err != nil || string(rest) != "gh" {
		t.Fatalf("ReadAll = %q, %v", rest, err)
	}
}

func TestWriteToReadOnlyFileFails(t *testing.T) {
	h, fs := newFS(t)
	h.AddFile("ro", []byte("x"))
	f, _ := fs.Open("ro", host.ModeRead)
	defer f.Close()
	if _, err := f.Write([]byte("y")); err == nil {
		t.Fatal("write through a read-only handle did not fail")
	}
}

func TestStatRenameDelete(t *testing.T) {
	h, fs := newFS(t)
	h.AddFile("a", []byte("1234"))

	st, err := fs.Stat("a")
	if err != nil || st.IsDir || st.Size != 4 {
		t.Fatalf("Stat = %+v, %v", st, err)
	}

	if err := fs.Rename("a", "b"); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Stat("a"); err == nil {
		t.Fatal("old name still stats after rename")
	}
	if err := fs.Delete("b", false); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Stat("b"); err == nil {
		t.Fatal("file still stats after delete")
	}
}

func TestMkdirAndList(t *testing.T) {
	h, fs := newFS(t)
	if err := fs.Mkdir("saves"); err != nil {
		t.Fatal(err)
	}
	st, err := fs.Stat("saves")
	if err != nil || !st.IsDir {
		t.Fatalf("Stat = %+v, %v", st, err)
	}

	h.AddFile("saves/slot0", nil)
	h.AddFile("saves/slot1", nil)
	names, err := fs.List("saves")
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != "slot0" || names[1] != "slot1" {
		t.Fatalf("List = %v", names)
	}
}

func TestCloseIdempotent(t *testing.T) {
	h, fs := newFS(t)
	h.AddFile("f", nil)
	f, _ := fs.Open("f", host.ModeRead)
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal("second Close returned an error")
	}
	if f.Name() != "f" {
		t.Errorf("Name() = %q", f.Name())
	}
}
