package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"digital.vasic.chinotto/pkg/assertion"
	"digital.vasic.chinotto/pkg/plugin"
)

// Version is reported by the filesystem plugin.
const Version = "1.0.0"

// typeCheck is a file type predicate together with the phrase
// used in its messages.
type typeCheck struct {
	names  []string
	is     func(Stat) bool
	phrase string
}

var typeChecks = []typeCheck{
	{[]string{"file", "regularFile"}, IsRegular, "a regular file"},
	{[]string{"directory"}, IsDir, "a directory"},
	{[]string{"symlink", "symbolicLink"}, IsSymlink, "a symbolic link"},
	{[]string{"device", "deviceFile"}, IsDevice, "a character or block device"},
	{[]string{"blockDevice"}, IsBlockDevice, "a block device"},
	{[]string{"characterDevice", "charDevice"}, IsCharDevice, "a character device"},
	{[]string{"fifo", "namedPipe"}, IsFIFO, "a FIFO"},
	{[]string{"door"}, IsDoor, "a door"},
	{[]string{"socket"}, IsSocket, "a socket"},
}

// Register installs the filesystem assertions into r. Names r
// already owns are left alone.
func Register(r assertion.Registrar) {
	assertion.AddMethod(r, equalPath, "equalPath")
	assertion.AddMethod(r, hardLink, "hardLink", "hardLinkOf")
	assertion.AddMethod(r, pointTo, "pointTo", "pointingTo")
	assertion.AddProperty(r, existOnDisk, "existOnDisk", "existsOnDisk")

	for _, tc := range typeChecks {
		assertion.AddProperty(r, tc.property(), tc.names...)
	}
}

// Plugin returns the filesystem assertions as a plugin.
func Plugin() plugin.Plugin {
	return plugin.New("filesystem", Version, func(ctx *plugin.Context) error {
		Register(ctx.Assertions)
		return nil
	})
}

// subjectPath reads the chain subject as a path.
func subjectPath(a *assertion.Assertion) (string, error) {
	return toPath(a.Subject(), "subject")
}

func toPath(v any, what string) (string, error) {
	s, ok := assertion.AsString(v)
	if !ok {
		return "", assertion.Usagef("%s must be a path, got %T", what, v)
	}
	return s, nil
}

func exists(path string) bool {
	_, err := Lstat(path)
	return err == nil
}

// existOnDisk treats a subject that is not a path as missing.
func existOnDisk(a *assertion.Assertion) error {
	path, ok := assertion.AsString(a.Subject())
	if !ok {
		return a.Assert(assertion.Verdict(
			false,
			fmt.Sprintf("expected %v to exist in filesystem", a.Subject()),
			fmt.Sprintf("expected %v not to exist in filesystem", a.Subject()),
		))
	}
	return a.Assert(assertion.Verdict(
		exists(path),
		fmt.Sprintf(`expected "%s" to exist in filesystem`, path),
		fmt.Sprintf(`expected "%s" not to exist in filesystem`, path),
	))
}

// property builds the handler for a file type check. A negated
// check passes outright for a path that does not resolve.
func (tc typeCheck) property() assertion.Property {
	return func(a *assertion.Assertion) error {
		path, err := subjectPath(a)
		if err != nil {
			return err
		}
		if a.Negated() {
			if _, err := os.Stat(path); err != nil {
				return nil
			}
		}
		if err := mustExist(a, path); err != nil {
			return err
		}

		st, err := Lstat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		return a.Assert(assertion.Verdict(
			tc.is(st),
			fmt.Sprintf(`expected "%s" to be %s`, path, tc.phrase),
			fmt.Sprintf(`expected "%s" not to be %s`, path, tc.phrase),
		))
	}
}

// mustExist runs existOnDisk on a fresh chain.
func mustExist(a *assertion.Assertion, path string) error {
	return a.Expect(path).To().Prop("existOnDisk").Err()
}

func equalPath(a *assertion.Assertion, args ...any) error {
	subject, err := subjectPath(a)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return assertion.Usagef("target path is missing")
	}
	target, err := toPath(args[0], "target")
	if err != nil {
		return err
	}

	cleanSubject := filepath.Clean(subject)
	cleanTarget := filepath.Clean(target)
	return a.Assert(assertion.Compare(
		cleanSubject == cleanTarget,
		fmt.Sprintf(`expected path "%s" to equal "%s"`, subject, target),
		fmt.Sprintf(`expected path "%s" not to equal "%s"`, subject, target),
		cleanSubject,
		cleanTarget,
	).WithDiff())
}

// fileID is how hard link failures show both sides.
type fileID struct {
	Device uint64
	Inode  uint64
}

func hardLink(a *assertion.Assertion, args ...any) error {
	subject, err := subjectPath(a)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return assertion.Usagef("target path is missing")
	}
	target, err := toPath(args[0], "target")
	if err != nil {
		return err
	}
	if err := mustExist(a, subject); err != nil {
		return err
	}
	if err := mustExist(a, target); err != nil {
		return err
	}

	subjectStat, err := Lstat(subject)
	if err != nil {
		return fmt.Errorf("stat %s: %w", subject, err)
	}
	targetStat, err := Lstat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	return a.Assert(assertion.Compare(
		SameFile(subjectStat, targetStat),
		fmt.Sprintf(`expected "%s" to be hard-linked to "%s"`, subject, target),
		fmt.Sprintf(`expected "%s" not to be hard-linked to "%s"`, subject, target),
		fileID{Device: subjectStat.Device, Inode: subjectStat.Inode},
		fileID{Device: targetStat.Device, Inode: targetStat.Inode},
	).WithDiff())
}

func pointTo(a *assertion.Assertion, args ...any) error {
	subject, err := subjectPath(a)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return assertion.Usagef("target path is missing")
	}
	target, err := toPath(args[0], "target")
	if err != nil {
		return err
	}
	if err := a.Expect(subject).To().Be().A().Prop("symlink").Err(); err != nil {
		return err
	}

	actual, err := linkTarget(subject)
	if err != nil {
		return err
	}
	expected, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", target, err)
	}

	return a.Assert(assertion.Verdict(
		expected == actual,
		fmt.Sprintf(`expected "%s" to point to "%s"`, subject, expected),
		fmt.Sprintf(`expected "%s" not to point to "%s"`, subject, expected),
	))
}

// linkTarget resolves a symbolic link to an absolute path. A
// dangling link resolves to its literal target, taken relative
// to the directory holding the link.
func linkTarget(link string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(link); err == nil {
		return filepath.Abs(resolved)
	}

	dest, err := os.Readlink(link)
	if err != nil {
		return "", fmt.Errorf("read link %s: %w", link, err)
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(link), dest)
	}
	return filepath.Abs(dest)
}
