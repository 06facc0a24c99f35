// scriptvm 是交易脚本的交互式解释器。
// 它读取锁定脚本和解锁脚本（十六进制或汇编形式），逐条指令执行并展示数据栈，
// 最后按最终栈判定这次花费是否有效。

package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/qinglongcn/scriptvm/txscript"
)

// config 定义了 scriptvm 的命令行选项。
type config struct {
	ScriptFile string `short:"f" long:"file" description:"从文件读取脚本：第一行为锁定脚本，第二行为解锁脚本"`
	Headless   bool   `long:"headless" description:"不逐步暂停，直接执行到结束"`
	LogLevel   string `long:"loglevel" default:"info" description:"日志级别 {trace, debug, info, warn, error}"`
}

// readScriptFile 从文件读取脚本对，第一行是锁定脚本，第二行是解锁脚本，空行被忽略。
func readScriptFile(fs afero.Fs, path string) (locking, unlocking string, err error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", "", errors.Wrapf(err, "读取脚本文件 %s 失败", path)
	}

	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) < 2 {
		return "", "", errors.Errorf("脚本文件 %s 需要两行：锁定脚本和解锁脚本", path)
	}
	return lines[0], lines[1], nil
}

// promptScript 在终端提示输入一段脚本文本。
func promptScript(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "读取输入失败")
	}
	return strings.TrimSpace(line), nil
}

// printStack 自栈顶向栈底打印数据栈，每个元素一行十六进制。
func printStack(stack [][]byte) {
	if len(stack) == 0 {
		fmt.Println("  <empty>")
		return
	}
	for i := len(stack) - 1; i >= 0; i-- {
		fmt.Printf("  %s\n", hex.EncodeToString(stack[i]))
	}
}

func realMain() error {
	cfg := &config{}
	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PrintErrors)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return errors.Wrap(err, "解析命令行选项失败")
	}
	setLog(cfg.LogLevel)
	go handleSignals()

	reader := bufio.NewReader(os.Stdin)

	var lockingText, unlockingText string
	var err error
	if cfg.ScriptFile != "" {
		lockingText, unlockingText, err = readScriptFile(afero.NewOsFs(), cfg.ScriptFile)
		if err != nil {
			return err
		}
	} else {
		fmt.Println("Transaction Script Interpreter")
		fmt.Println()
		lockingText, err = promptScript(reader, "Locking script (hex or asm): ")
		if err != nil {
			return err
		}
	}

	locking, err := txscript.NewScript(lockingText)
	if err != nil {
		return errors.Wrap(err, "解析锁定脚本失败")
	}
	fmt.Printf("Type: %v\n\n", locking.Class())

	if cfg.ScriptFile == "" {
		unlockingText, err = promptScript(reader, "Unlocking script (hex or asm): ")
		if err != nil {
			return err
		}
	}
	unlocking, err := txscript.NewScript(unlockingText)
	if err != nil {
		return errors.Wrap(err, "解析解锁脚本失败")
	}

	fmt.Println("\n=== Scripts ===")
	fmt.Printf("Locking : %s\n", locking)
	fmt.Printf("Unlocking: %s\n", unlocking)
	if !cfg.Headless {
		fmt.Println("\nPress Enter to start execution...")
		if _, err := reader.ReadString('\n'); err != nil {
			return errors.Wrap(err, "读取输入失败")
		}
	}

	vm, err := txscript.NewSpendEngine(unlocking, locking)
	if err != nil {
		return errors.Wrap(err, "构建脚本引擎失败")
	}
	if !cfg.Headless {
		vm.SetStepHook(func(remaining []string, stack [][]byte) error {
			fmt.Print("\x1b[2J\x1b[H") // clear screen
			fmt.Printf("Remaining script: %v\n\n", remaining)
			fmt.Println("Stack (top to bottom):")
			printStack(stack)
			fmt.Println("\nPress Enter for next step...")
			_, err := reader.ReadString('\n')
			return err
		})
	}

	if err := vm.Execute(); err != nil {
		logrus.Errorf("Script execution failed: %v", err)
		fmt.Printf("\nINVALID - %v\n", err)
		return nil
	}

	finalStack := vm.GetStack()
	fmt.Println("\n=== Final stack ===")
	printStack(finalStack)

	if txscript.IsValidStack(finalStack) {
		fmt.Println("\nVALID - Transaction would be accepted")
	} else {
		fmt.Println("\nINVALID - Transaction rejected")
	}
	return nil
}

func main() {
	if err := realMain(); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}
