// Cadastro interativo de usuários do sistema. Execute sempre que precisar
// criar um novo usuário:
//
//	go run ./cmd/cadastrar-usuario
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"nexus-backend/internal/config"
	"nexus-backend/internal/database"
	"nexus-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	reader := bufio.NewReader(os.Stdin)

	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("    CADASTRO DE NOVO USUÁRIO - NEXUS PDV")
	fmt.Println(strings.Repeat("=", 50))

	nome := lerCampo(reader, "Digite o nome do funcionário: ", func(v string) error {
		if v == "" {
			return fmt.Errorf("o nome não pode estar vazio")
		}
		return nil
	})

	username := lerCampo(reader, "Digite o nome de usuário desejado: ", func(v string) error {
		if len(v) < 3 {
			return fmt.Errorf("o nome de usuário deve ter pelo menos 3 caracteres")
		}
		var existentes int64
		database.DB.Model(&models.Usuario{}).Where("username = ?", v).Count(&existentes)
		if existentes > 0 {
			return fmt.Errorf("o usuário '%s' já existe, escolha outro nome", v)
		}
		return nil
	})

	var senha string
	for {
		senha = lerCampo(reader, "Digite a senha desejada: ", func(v string) error {
			if len(v) < 4 {
				return fmt.Errorf("a senha deve ter pelo menos 4 caracteres")
			}
			return nil
		})
		confirmacao := lerLinha(reader, "Confirme a senha: ")
		if senha == confirmacao {
			break
		}
		fmt.Println("As senhas não coincidem. Tente novamente.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Erro ao gerar o hash da senha: %v", err)
	}

	usuario := models.Usuario{
		Nome:         nome,
		Username:     strings.ToLower(username),
		PasswordHash: string(hash),
	}
	if err := database.DB.Create(&usuario).Error; err != nil {
		log.Fatalf("Erro ao cadastrar usuário: %v", err)
	}

	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("USUÁRIO CADASTRADO COM SUCESSO!")
	fmt.Printf("   Nome de usuário: %s\n", usuario.Username)
	fmt.Println("Agora é possível fazer login no sistema com estas credenciais.")
	fmt.Println(strings.Repeat("=", 50))
}

func lerLinha(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	linha, _ := reader.ReadString('\n')
	return strings.TrimSpace(linha)
}

func lerCampo(reader *bufio.Reader, prompt string, validar func(string) error) string {
	for {
		v := lerLinha(reader, prompt)
		if err := validar(v); err != nil {
			fmt.Printf("%s. Tente novamente.\n", err)
			continue
		}
		return v
	}
}
