package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// terminalConfirmer запрашивает подтверждение через стандартный ввод
type terminalConfirmer struct{}

// Confirm печатает вопрос и читает ответ y/n
func (terminalConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// acceptAll подтверждает без вопроса, используется с флагом --yes
type acceptAll struct{}

// Confirm всегда отвечает согласием
func (acceptAll) Confirm(prompt string) (bool, error) {
	return true, nil
}
