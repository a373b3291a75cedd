// Package cli はコマンドライン引数と環境変数を解析する。
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zurustar/kame/pkg/graphics"
	"github.com/zurustar/kame/pkg/logger"
	"github.com/zurustar/kame/pkg/script"
)

// Config はコマンドライン引数から解析された設定を保持する
type Config struct {
	ScriptPath string          // スクリプトファイルのパス
	Timeout    time.Duration   // タイムアウト時間（0は無制限）
	LogLevel   string          // ログレベル（debug, info, warn, error）
	Headless   bool            // ヘッドレスモード
	Output     string          // 実行後に保存するスナップショットのパス
	ConfigPath string          // キャンバス設定（YAML）のパス
	Encoding   script.Encoding // スクリプトの文字コード
	PassDelay  time.Duration   // While の1周ごとの待ち時間
	SaveScript string          // 読み込んだスクリプトを UTF-8 で保存するパス
	ShowHelp   bool            // ヘルプ表示フラグ
}

// boolFlags は値を取らないフラグ
var boolFlags = map[string]bool{
	"-h":         true,
	"--h":        true,
	"-help":      true,
	"--help":     true,
	"-headless":  true,
	"--headless": true,
}

// ParseArgs コマンドライン引数を解析してConfigを返す
func ParseArgs(args []string) (*Config, error) {
	return parse(args, io.Discard)
}

func parse(args []string, output io.Writer) (*Config, error) {
	// 引数を並べ替え：フラグを前に、位置引数を後ろに
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("kame", flag.ContinueOnError)
	fs.SetOutput(output)

	config := &Config{}

	var timeoutSec int
	var encoding string
	fs.IntVar(&timeoutSec, "timeout", 0, "タイムアウト時間（秒）")
	fs.IntVar(&timeoutSec, "t", 0, "タイムアウト時間（秒）（短縮形）")
	fs.StringVar(&config.LogLevel, "log-level", "info", "ログレベル（debug, info, warn, error）")
	fs.StringVar(&config.LogLevel, "l", "info", "ログレベル（短縮形）")
	fs.BoolVar(&config.Headless, "headless", false, "ヘッドレスモード")
	fs.StringVar(&config.Output, "output", "", "スナップショットの保存先（.png, .bmp, .svg）")
	fs.StringVar(&config.Output, "o", "", "スナップショットの保存先（短縮形）")
	fs.StringVar(&config.ConfigPath, "config", "", "キャンバス設定ファイル（YAML）")
	fs.StringVar(&config.ConfigPath, "c", "", "キャンバス設定ファイル（短縮形）")
	fs.StringVar(&encoding, "encoding", "auto", "スクリプトの文字コード（auto, utf-8, utf-16, shift_jis）")
	fs.DurationVar(&config.PassDelay, "pass-delay", 0, "While の1周ごとの待ち時間（例: 50ms）")
	fs.StringVar(&config.SaveScript, "save-script", "", "読み込んだスクリプトを UTF-8 で保存（.gz, .zst は圧縮）")
	fs.BoolVar(&config.ShowHelp, "help", false, "ヘルプを表示")
	fs.BoolVar(&config.ShowHelp, "h", false, "ヘルプを表示（短縮形）")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// 環境変数からの設定（コマンドラインフラグが優先）
	if !config.Headless {
		if headlessEnv := os.Getenv("HEADLESS"); headlessEnv != "" {
			config.Headless = headlessEnv == "1" || strings.ToLower(headlessEnv) == "true"
		}
	}

	if timeoutSec == 0 {
		if timeoutEnv := os.Getenv("TIMEOUT"); timeoutEnv != "" {
			if t, err := strconv.Atoi(timeoutEnv); err == nil && t > 0 {
				timeoutSec = t
			}
		}
	}

	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	if config.Output == "" {
		config.Output = os.Getenv("KAME_OUTPUT")
	}

	// タイムアウトの検証
	if timeoutSec < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
	}
	config.Timeout = time.Duration(timeoutSec) * time.Second

	if config.PassDelay < 0 {
		return nil, fmt.Errorf("pass delay must be non-negative, got %v", config.PassDelay)
	}

	// ログレベルの検証
	if _, err := logger.ParseLevel(config.LogLevel); err != nil {
		return nil, fmt.Errorf("%w (must be debug, info, warn, or error)", err)
	}

	enc, err := script.ParseEncoding(encoding)
	if err != nil {
		return nil, err
	}
	config.Encoding = enc

	if config.Output != "" {
		if _, err := graphics.FormatFor(config.Output); err != nil {
			return nil, err
		}
	}

	// 位置引数（スクリプトファイル）
	switch fs.NArg() {
	case 0:
	case 1:
		config.ScriptPath = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected one script path, got %d", fs.NArg())
	}

	if config.ScriptPath == "" && !config.ShowHelp {
		return nil, fmt.Errorf("script path is required")
	}

	return config, nil
}

// reorderArgs 引数を並べ替えて、フラグを前に、位置引数を後ろに配置する
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}

		// フラグかどうかを判定（-または--で始まる）
		if len(arg) > 1 && arg[0] == '-' {
			flags = append(flags, arg)

			// "--timeout=5" の形式は値を含む
			if strings.Contains(arg, "=") || boolFlags[arg] {
				continue
			}
			// -t 5 のような場合は次の引数も追加
			if i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}

	// フラグを前に、位置引数を "--" の後ろに配置
	if len(positional) == 0 {
		return flags
	}
	return append(append(flags, "--"), positional...)
}

// WriteHelp ヘルプメッセージを書き込む
func WriteHelp(w io.Writer) {
	fmt.Fprintf(w, `kame - タートルグラフィックス スクリプトインタプリタ

Usage:
  kame [options] <script>

Arguments:
  script        実行するスクリプトファイル（.gz / .zst で圧縮されていてもよい）

Options:
  -t, --timeout <seconds>     指定秒数後に実行を打ち切る（デフォルト: 無制限）
  -l, --log-level <level>     ログレベル: debug, info, warn, error（デフォルト: info）
  --headless                  ヘッドレスモード（GUIなし）
  -o, --output <file>         実行後のキャンバスを保存（.png, .bmp, .svg）
  -c, --config <file>         キャンバス設定ファイル（YAML）
  --encoding <name>           文字コード: auto, utf-8, utf-16, shift_jis（デフォルト: auto）
  --pass-delay <duration>     While の1周ごとに待つ時間（例: 100ms）
  --save-script <file>        読み込んだスクリプトを UTF-8 で保存（.gz, .zst は圧縮）
  -h, --help                  このヘルプを表示

Environment Variables:
  HEADLESS=1                  ヘッドレスモードを有効化
  TIMEOUT=<seconds>           タイムアウト時間（秒）
  LOG_LEVEL=<level>           ログレベル
  KAME_OUTPUT=<file>          スナップショットの保存先

Examples:
  kame square.txt                         ウィンドウに描画
  kame --headless -o out.png square.txt   ヘッドレスで実行して PNG に保存
  kame --pass-delay 100ms spiral.txt      ループをアニメーション表示
  kame -c canvas.yaml demo.txt.gz         設定ファイルと圧縮スクリプトを使用
  HEADLESS=1 kame -o out.svg demo.txt     環境変数でヘッドレスモード
  kame --headless --save-script a.txt.gz sjis.txt  Shift-JIS のスクリプトを変換して保存
`)
}
