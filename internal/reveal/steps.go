package reveal

import (
	"fmt"

	"github.com/vk/kunyue/internal/alphabet"
)

// EncodeSteps returns the twelve narration lines shown while encoding.
func EncodeSteps(plaintext, credential string) []string {
	lines := []string{
		"读取文本内容: " + plaintext,
		"使用SHA-256算法对原文和凭证 '" + credential + "' 进行哈希...",
		"将'" + alphabet.Glyphs() + "'五个字设定为编码基础...",
	}
	lines = append(lines, glyphLines()...)
	lines = append(lines,
		"根据SHA-256哈希值将每个字符映射为'"+alphabet.Glyphs()+"'中的一个字...",
		"生成基于'"+alphabet.Glyphs()+"'的加密文本并按五字分组...",
		"添加加密凭证...",
		"加密完成！",
	)
	return number(lines)
}

// DecodeSteps returns the fifteen narration lines shown while decoding.
func DecodeSteps(formatted, credential string) []string {
	lines := []string{
		"读取加密内容: " + formatted,
		"提取加密格式...",
		"验证格式是否符合'坤曰：只因你太美，你我美积极，...，凭证'",
		"提取加密文本部分（由'" + alphabet.Glyphs() + "'组成的文本）...",
		"提取加密凭证: " + credential,
		"验证凭证是否匹配...",
		"分析'" + alphabet.Glyphs() + "'编码模式...",
	}
	lines = append(lines, glyphLines()...)
	lines = append(lines,
		"尝试根据'"+alphabet.Glyphs()+"'编码还原SHA-256哈希值...",
		"查找对应的原始内容...",
		"解密完成！",
	)
	return number(lines)
}

func glyphLines() []string {
	syms := alphabet.Symbols()
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = fmt.Sprintf("字符'%s': %s", s.Glyph, s.Bits)
	}
	return out
}

func number(lines []string) []string {
	for i := range lines {
		lines[i] = fmt.Sprintf("%d. %s", i+1, lines[i])
	}
	return lines
}
