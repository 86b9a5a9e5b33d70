package fileurl

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// IsDir determines if the given path is a directory
// IsDir 判断所给路径是否为文件夹
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// CreatePath creates the parent directory of dst
// CreatePath 创建 dst 的父目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// SanitizeName turns a display name into a file name: every rune that is not
// a letter or a digit becomes '_'
// SanitizeName 将显示名称转换为文件名：非字母数字字符替换为 '_'
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name)
}

// WriteFileAtomic replaces dst with data in one rename: the content is written
// to a temp file next to dst, synced, then renamed over it
// WriteFileAtomic 先写入同目录临时文件并同步，再重命名覆盖目标文件
func WriteFileAtomic(dst string, data []byte, perm os.FileMode) (err error) {
	if err := CreatePath(dst, 0755); err != nil {
		return errors.Wrap(err, "create directory failed")
	}

	tmp := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return errors.Wrap(err, "create temp file failed")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "write temp file failed")
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "sync temp file failed")
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "close temp file failed")
	}
	if err = os.Rename(tmp, dst); err != nil {
		return errors.Wrap(err, "rename temp file failed")
	}
	return nil
}
