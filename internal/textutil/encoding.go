// Package textutil provides charset lookup and detection for decoding
// legacy mail corpora.
package textutil

import (
	"fmt"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// EncodingByName returns an encoding for the given IANA charset name, or
// nil if the name is not recognized.
func EncodingByName(name string) encoding.Encoding {
	switch name {
	case "UTF-8", "utf-8", "utf8":
		return unicode.UTF8
	case "windows-1252", "CP1252", "cp1252":
		return charmap.Windows1252
	case "ISO-8859-1", "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1
	case "ISO-8859-15", "iso-8859-15", "latin9":
		return charmap.ISO8859_15
	case "ISO-8859-2", "iso-8859-2", "latin2":
		return charmap.ISO8859_2
	case "Shift_JIS", "shift_jis", "shift-jis", "sjis":
		return japanese.ShiftJIS
	case "EUC-JP", "euc-jp", "eucjp":
		return japanese.EUCJP
	case "ISO-2022-JP", "iso-2022-jp":
		return japanese.ISO2022JP
	case "EUC-KR", "euc-kr", "euckr":
		return korean.EUCKR
	case "GB2312", "gb2312", "GBK", "gbk":
		return simplifiedchinese.GBK
	case "GB18030", "gb18030":
		return simplifiedchinese.GB18030
	case "Big5", "big5", "big-5":
		return traditionalchinese.Big5
	case "KOI8-R", "koi8-r":
		return charmap.KOI8R
	case "KOI8-U", "koi8-u":
		return charmap.KOI8U
	default:
		return nil
	}
}

// Detect guesses the charset of data and returns the matching encoding.
// Detection needs a reasonable sample; short or ambiguous inputs return an
// error rather than a low-confidence guess.
func Detect(data []byte) (encoding.Encoding, error) {
	minConfidence := 30
	if len(data) > 50 {
		minConfidence = 50
	}

	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}
	if result.Confidence < minConfidence {
		return nil, fmt.Errorf("detect charset: low confidence %d for %q", result.Confidence, result.Charset)
	}
	enc := EncodingByName(result.Charset)
	if enc == nil {
		return nil, fmt.Errorf("detect charset: unsupported charset %q", result.Charset)
	}
	return enc, nil
}
