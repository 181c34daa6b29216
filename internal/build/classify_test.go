package build

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Classification
	}{
		{`C:\proj\Debug\out\app.exe`, Debug},
		{`C:\proj\bin\Release\app.exe`, Release},
		{`C:\proj\Debug\Release\app.exe`, Debug},
		{`C:\proj\Release\Debug\app.exe`, Release},
		{`C:\proj\bin\app.exe`, Unknown},
		{`/home/dev/proj/bin/debug/app`, Debug},
		{`/home/dev/proj/RELEASE/x64/app`, Release},
		{`/srv/releases/app`, Unknown},
		{`C:\proj\bin\Debug`, Unknown},
		{`debug`, Unknown},
		{``, Unknown},
		{`mixed/Debug\app.exe`, Debug},
	}

	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestClassificationString(t *testing.T) {
	for c, want := range map[Classification]string{Debug: "debug", Release: "release", Unknown: "unknown"} {
		if got := c.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(c), got, want)
		}
	}
}
