package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/app"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/envelope"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/logger"
)

// SessionCommandHandler drives the interactive envelope session: key
// exchange with a counterparty followed by a message loop.
type SessionCommandHandler struct {
	session *app.Session
	logger  logger.Logger

	reader *bufio.Reader

	promptColor  *color.Color
	infoColor    *color.Color
	warnColor    *color.Color
	successColor *color.Color
}

// NewSessionCommandHandler initializes a new SessionCommandHandler over a
// fully wired session.
func NewSessionCommandHandler(auditPath string) (*SessionCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	session, err := setupSession(loggerInstance, auditPath)
	if err != nil {
		return nil, fmt.Errorf("failed to setup session: %w", err)
	}

	return &SessionCommandHandler{
		session:      session,
		logger:       loggerInstance,
		reader:       bufio.NewReader(os.Stdin),
		promptColor:  color.New(color.FgCyan, color.Bold),
		infoColor:    color.New(color.FgWhite),
		warnColor:    color.New(color.FgYellow),
		successColor: color.New(color.FgGreen),
	}, nil
}

// SessionCmd runs the interactive session until the user exits
func (commandHandler *SessionCommandHandler) SessionCmd(cmd *cobra.Command, _ []string) {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		commandHandler.logger.Error("invalid key-size flag: %v", err)
		return
	}

	defer commandHandler.session.Close()

	if err := commandHandler.establishKeys(keySize); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.printHelp()
	commandHandler.messageLoop()
}

// establishKeys generates the session key pair, hands the public key to the
// user and imports the counterparty key.
func (commandHandler *SessionCommandHandler) establishKeys(keySize int) error {
	commandHandler.infoColor.Printf("Generating a %d-bit key pair...\n", keySize)
	if err := commandHandler.session.GenerateKeyPair(keySize); err != nil {
		return err
	}

	if err := commandHandler.sharePublicKey(); err != nil {
		return err
	}

	return commandHandler.importPeerKey()
}

// sharePublicKey exports the session public key, optionally wrapped under a
// passphrase, and places it on the clipboard for the user to send.
func (commandHandler *SessionCommandHandler) sharePublicKey() error {
	passphrase := ""
	commandHandler.promptColor.Print("Wrap your public key with a passphrase? [y/N] ")
	answer, err := commandHandler.readLine()
	if err != nil {
		return err
	}
	if strings.EqualFold(answer, "y") {
		passphrase, err = readPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
	}

	exported, err := commandHandler.session.ExportPublicKey(passphrase)
	if err != nil {
		return err
	}

	fmt.Println(string(exported))
	if err := clipboard.WriteAll(string(exported)); err != nil {
		commandHandler.warnColor.Println("Clipboard unavailable, copy the key above manually.")
	} else {
		commandHandler.successColor.Println("Your public key is on the clipboard. Send it to your counterparty.")
	}
	return nil
}

// importPeerKey reads the counterparty public key, pasted as plain PEM or as
// an AES256-ENC / RSA-ENC wrapped export, terminated by an empty line.
func (commandHandler *SessionCommandHandler) importPeerKey() error {
	commandHandler.promptColor.Println("Paste the counterparty public key, then an empty line:")
	text, err := commandHandler.readBlock()
	if err != nil {
		return err
	}

	passphrase := ""
	if format, ok := envelope.DetectFormat([]byte(text)); ok && format == envelope.FormatAES256 {
		passphrase, err = readPassphrase("Passphrase for the received key: ")
		if err != nil {
			return err
		}
	}

	imported, err := commandHandler.session.ImportRemoteKey([]byte(text), passphrase)
	if err != nil {
		return err
	}

	limit, detected, err := commandHandler.session.MessageLimit()
	if err != nil {
		return err
	}
	commandHandler.successColor.Printf("Imported %d-bit key, fingerprint %s\n", imported.Bits, imported.SHA256[:16])
	if detected {
		commandHandler.infoColor.Printf("Direct messages up to %d bytes, larger payloads via efile.\n", limit)
	} else {
		commandHandler.warnColor.Printf("Key size not detected, assuming %d bytes per direct message.\n", limit)
	}
	return nil
}

func (commandHandler *SessionCommandHandler) messageLoop() {
	for {
		commandHandler.promptColor.Print("> ")
		line, err := commandHandler.readLine()
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		command := ""
		if len(fields) > 0 {
			command = fields[0]
		}

		switch command {
		case "":
			commandHandler.decryptClipboard()
		case "more":
			commandHandler.encryptMultiline()
		case "efile":
			commandHandler.encryptFile(fields[1:])
		case "dfile":
			commandHandler.decryptFile(fields[1:])
		case "epublic":
			commandHandler.exportKeyFile(fields[1:], false)
		case "esecret":
			commandHandler.exportKeyFile(fields[1:], true)
		case "audit":
			commandHandler.showAuditTrail()
		case "back":
			if err := commandHandler.importPeerKey(); err != nil {
				commandHandler.warnColor.Printf("Key import failed: %v\n", err)
			}
		case "help":
			commandHandler.printHelp()
		case "clear":
			commandHandler.clearScreen()
		case "exit", "quit":
			return
		default:
			commandHandler.encryptAndShare([]byte(line))
		}
	}
}

// encryptAndShare seals a message to the counterparty key and places the
// envelope on the clipboard.
func (commandHandler *SessionCommandHandler) encryptAndShare(plaintext []byte) {
	encoded, err := commandHandler.session.EncryptMessage(plaintext)
	if err != nil {
		var sizeErr *envelope.PayloadSizeError
		if errors.As(err, &sizeErr) {
			commandHandler.warnColor.Printf("Message of %d bytes exceeds the %d byte limit, use efile for large payloads.\n", sizeErr.Size, sizeErr.Limit)
			return
		}
		commandHandler.warnColor.Printf("Encryption failed: %v\n", err)
		return
	}

	fmt.Println(string(encoded))
	if err := clipboard.WriteAll(string(encoded)); err != nil {
		commandHandler.warnColor.Println("Clipboard unavailable, copy the envelope above manually.")
	} else {
		commandHandler.successColor.Println("Envelope copied to clipboard.")
	}
}

// decryptClipboard opens whatever envelope is on the clipboard.
func (commandHandler *SessionCommandHandler) decryptClipboard() {
	text, err := clipboard.ReadAll()
	if err != nil {
		commandHandler.warnColor.Printf("Clipboard unavailable: %v\n", err)
		return
	}

	raw := []byte(strings.TrimSpace(text))
	passphrase := ""
	if format, ok := envelope.DetectFormat(raw); ok && format == envelope.FormatAES256 {
		passphrase, err = readPassphrase("Passphrase: ")
		if err != nil {
			commandHandler.warnColor.Printf("%v\n", err)
			return
		}
	}

	plain, format, err := commandHandler.session.Decrypt(raw, passphrase)
	if err != nil {
		commandHandler.warnColor.Printf("Decryption failed: %v\n", err)
		return
	}
	commandHandler.infoColor.Printf("[%s] ", format)
	commandHandler.successColor.Println(string(plain))
}

// encryptMultiline reads lines until an empty line and encrypts the block.
func (commandHandler *SessionCommandHandler) encryptMultiline() {
	commandHandler.promptColor.Println("Enter the message, then an empty line:")
	text, err := commandHandler.readBlock()
	if err != nil {
		commandHandler.warnColor.Printf("%v\n", err)
		return
	}
	commandHandler.encryptAndShare([]byte(text))
}

func (commandHandler *SessionCommandHandler) encryptFile(args []string) {
	if len(args) != 1 {
		commandHandler.warnColor.Println("usage: efile <path>")
		return
	}
	outPath, err := commandHandler.session.EncryptFile(args[0])
	if err != nil {
		commandHandler.warnColor.Printf("File encryption failed: %v\n", err)
		return
	}
	commandHandler.successColor.Printf("Encrypted file written to %s\n", outPath)
}

func (commandHandler *SessionCommandHandler) decryptFile(args []string) {
	if len(args) < 1 || len(args) > 2 {
		commandHandler.warnColor.Println("usage: dfile <path> [output-path]")
		return
	}
	outputPath := ""
	if len(args) == 2 {
		outputPath = args[1]
	}
	outPath, err := commandHandler.session.DecryptFile(args[0], outputPath)
	if err != nil {
		commandHandler.warnColor.Printf("File decryption failed: %v\n", err)
		return
	}
	commandHandler.successColor.Printf("Decrypted file written to %s\n", outPath)
}

// exportKeyFile persists a key half to disk. The private half leaves sealed
// memory only on this explicit request.
func (commandHandler *SessionCommandHandler) exportKeyFile(args []string, private bool) {
	if len(args) != 1 {
		if private {
			commandHandler.warnColor.Println("usage: esecret <path>")
		} else {
			commandHandler.warnColor.Println("usage: epublic <path>")
		}
		return
	}

	var err error
	if private {
		err = commandHandler.session.ExportPrivateKeyFile(args[0])
	} else {
		err = commandHandler.session.ExportPublicKeyFile(args[0])
	}
	if err != nil {
		commandHandler.warnColor.Printf("Key export failed: %v\n", err)
		return
	}
	commandHandler.successColor.Printf("Key written to %s\n", args[0])
}

func (commandHandler *SessionCommandHandler) showAuditTrail() {
	records, err := commandHandler.session.AuditTrail(context.Background(), 20)
	if err != nil {
		commandHandler.warnColor.Printf("Audit trail unavailable: %v\n", err)
		return
	}
	if len(records) == 0 {
		commandHandler.infoColor.Println("No audit records (auditing may be disabled).")
		return
	}
	for _, record := range records {
		status := "ok"
		if !record.Succeeded {
			status = "failed"
		}
		commandHandler.infoColor.Printf("%s  %-14s %-16s %s\n",
			record.DateTimeCreated.Format("2006-01-02 15:04:05"), record.Operation, record.Format, status)
	}
}

func (commandHandler *SessionCommandHandler) printHelp() {
	commandHandler.infoColor.Println(`Type a message to encrypt it to your counterparty.
An empty line decrypts the envelope on your clipboard.

  more            compose a multi-line message
  efile <path>    hybrid-encrypt a file of any size
  dfile <path>    decrypt an encrypted file
  epublic <path>  write your public key to a file
  esecret <path>  write your private key to a file
  audit           show the recent operation trail
  back            import a new counterparty key
  clear           clear the screen
  help            show this help
  exit            leave the session`)
}

func (commandHandler *SessionCommandHandler) clearScreen() {
	name := "clear"
	if runtime.GOOS == "windows" {
		name = "cls"
	}
	clearCmd := exec.Command(name)
	clearCmd.Stdout = os.Stdout
	_ = clearCmd.Run()
}

func (commandHandler *SessionCommandHandler) readLine() (string, error) {
	line, err := commandHandler.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readBlock reads lines until the first empty line.
func (commandHandler *SessionCommandHandler) readBlock() (string, error) {
	var lines []string
	for {
		line, err := commandHandler.readLine()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// InitSessionCommands registers the interactive session command
func InitSessionCommands(rootCmd *cobra.Command) error {
	var sessionCmd = &cobra.Command{
		Use:   "session",
		Short: "Start an interactive encrypted messaging session",
		Run: func(cmd *cobra.Command, args []string) {
			auditPath, err := cmd.Flags().GetString("audit-db")
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid audit-db flag: %v\n", err)
				return
			}
			handler, err := NewSessionCommandHandler(auditPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to create session command handler: %v\n", err)
				return
			}
			handler.SessionCmd(cmd, args)
		},
	}
	sessionCmd.Flags().IntP("key-size", "", envelope.DefaultKeyBits, "RSA key size in bits (2048, 4096 or 8192)")
	sessionCmd.Flags().StringP("audit-db", "", "", "Path to the sqlite audit database (auditing disabled when omitted)")
	rootCmd.AddCommand(sessionCmd)
	return nil
}
