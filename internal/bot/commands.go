package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/rodpenna/internal/models"
)

const adminHelp = `Доступные команды:
/invite gen <student|teacher> [days] - Сгенерировать одноразовый код приглашения
/invite list - Список кодов приглашения
/invite revoke <code> - Удалить код приглашения
/stats - Счётчики пользователей и кодов
/help - Показать это сообщение

Примеры:
/invite gen student 14
/invite revoke STUDENT2023`

type commandHandler func(*tgbotapi.Message) error

func (b *Bot) routeCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"start":  b.handleHelp,
		"invite": b.handleInvite,
		"stats":  b.handleStats,
		"help":   b.handleHelp,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !b.admins[msg.From.ID] {
		b.reply(msg.Chat.ID, "Этот бот только для администраторов")
		return
	}

	if !msg.IsCommand() {
		b.reply(msg.Chat.ID, adminHelp)
		return
	}

	handler, found := b.routeCommands(msg.Command())
	if !found {
		b.reply(msg.Chat.ID, adminHelp)
		return
	}

	if err := handler(msg); err != nil {
		logger.Error.Printf("Command /%s failed: %v", msg.Command(), err)
		b.reply(msg.Chat.ID, fmt.Sprintf("Ошибка: %v", err))
	}
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	b.reply(msg.Chat.ID, adminHelp)
	return nil
}

func (b *Bot) handleInvite(msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		b.reply(msg.Chat.ID, adminHelp)
		return nil
	}

	switch args[0] {
	case "gen":
		return b.handleInviteGen(msg, args[1:])
	case "list":
		return b.handleInviteList(msg)
	case "revoke":
		return b.handleInviteRevoke(msg, args[1:])
	default:
		b.reply(msg.Chat.ID, adminHelp)
		return nil
	}
}

func (b *Bot) handleInviteGen(msg *tgbotapi.Message, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("укажите роль: student или teacher")
	}

	role := args[0]
	if role != models.RoleStudent && role != models.RoleTeacher {
		return fmt.Errorf("неизвестная роль %q", role)
	}

	days := b.config.Invites.DefaultExpiryDays
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil || parsed <= 0 {
			return fmt.Errorf("некорректный срок действия %q", args[1])
		}
		days = parsed
	}

	createdBy := fmt.Sprintf("tg:%d", msg.From.ID)
	code, err := b.gate.Generate(role, days, createdBy)
	if err != nil {
		return err
	}

	b.reply(msg.Chat.ID, fmt.Sprintf(
		"Код: %s\nРоль: %s\nДействителен до: %s",
		code.Code,
		code.Role,
		time.Unix(code.ExpiryDate, 0).UTC().Format("2006-01-02"),
	))
	return nil
}

func (b *Bot) handleInviteList(msg *tgbotapi.Message) error {
	codes, err := b.store.ListInviteCodes()
	if err != nil {
		return err
	}

	if len(codes) == 0 {
		b.reply(msg.Chat.ID, "Кодов нет")
		return nil
	}

	var sb strings.Builder
	for _, code := range codes {
		fmt.Fprintf(&sb, "%s [%s] %s, до %s\n",
			code.Code,
			code.Role,
			code.Status,
			time.Unix(code.ExpiryDate, 0).UTC().Format("2006-01-02"),
		)
	}
	b.reply(msg.Chat.ID, sb.String())
	return nil
}

func (b *Bot) handleInviteRevoke(msg *tgbotapi.Message, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("укажите код")
	}

	if err := b.store.DeleteInviteCode(args[0]); err != nil {
		return err
	}

	b.reply(msg.Chat.ID, fmt.Sprintf("Код %s удалён", args[0]))
	return nil
}

func (b *Bot) handleStats(msg *tgbotapi.Message) error {
	users, err := b.store.ListUsers()
	if err != nil {
		return err
	}

	codes, err := b.store.ListInviteCodes()
	if err != nil {
		return err
	}

	students, teachers := 0, 0
	for _, user := range users {
		switch user.Role {
		case models.RoleStudent:
			students++
		case models.RoleTeacher:
			teachers++
		}
	}

	active := 0
	for _, code := range codes {
		if code.Status == models.CodeStatusActive {
			active++
		}
	}

	b.reply(msg.Chat.ID, fmt.Sprintf(
		"Учеников: %d\nУчителей: %d\nКодов всего: %d, активных: %d",
		students, teachers, len(codes), active,
	))
	return nil
}
