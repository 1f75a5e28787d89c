package discord

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// The two top-level command groups are identical; "cov" exists so regulars
// can skip typing "covoiturage".
const (
	CommandCovoiturage = "covoiturage"
	CommandCov         = "cov"
)

// Subcommand names with their one-letter aliases.
const (
	SubCreer      = "creer"
	SubModifier   = "modifier"
	SubListe      = "liste"
	SubRejoindre  = "rejoindre"
	SubQuitter    = "quitter"
	SubSupprimer  = "supprimer"
	SubRang       = "rang"
	SubClassement = "classement"
)

// CanonicalSub maps a one-letter alias to its full subcommand name so the
// handler only dispatches on full names.
func CanonicalSub(name string) string {
	switch name {
	case "c":
		return SubCreer
	case "m":
		return SubModifier
	case "l":
		return SubListe
	case "r":
		return SubRejoindre
	case "q":
		return SubQuitter
	case "s":
		return SubSupprimer
	}
	return name
}

func tripOptions(required bool) []*discordgo.ApplicationCommandOption {
	var minSeats float64
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "jour",
			Description: "Le jour du départ",
			Required:    required,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "heure",
			Description: "L'heure du départ",
			Required:    required,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "lieu_depart",
			Description: "Le lieu d'où vous partez",
			Required:    required,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "lieu_arrivee",
			Description: "Le lieu d'arrivée",
			Required:    required,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "distance",
			Description: "La distance à laquelle vous acceptez d'aller chercher des gens par rapport au lieu de départ",
			Required:    required,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duree",
			Description: "La durée approximative du trajet",
			Required:    required,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "places",
			Description: "Le nombre de places disponibles",
			Required:    required,
			MinValue:    &minSeats,
		},
	}
}

func idOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         "id",
		Description:  "L'id du covoiturage",
		Required:     true,
		Autocomplete: true,
	}
}

func invisibleOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "invisible",
		Description: "Vous seul pourrez voir la liste (activé par défaut)",
	}
}

func subcommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

func commandDefinition(name string) *discordgo.ApplicationCommand {
	creer := tripOptions(true)
	modifier := append([]*discordgo.ApplicationCommandOption{idOption()}, tripOptions(false)...)
	liste := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "ids_longs",
			Description: "Affiche les IDs entier, utile si plusieurs covoiturages ont le même id raccourci",
		},
		invisibleOption(),
	}
	rejoindre := []*discordgo.ApplicationCommandOption{
		idOption(),
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "rappel",
			Description: "Si présent, le bot vous enverra un rappel x minutes avant l'heure du covoiturage",
		},
	}

	return &discordgo.ApplicationCommand{
		Name:        name,
		Description: "Gestion des covoiturages.",
		Options: []*discordgo.ApplicationCommandOption{
			subcommand(SubCreer, "Créer un nouveau covoiturage.", creer...),
			subcommand("c", "Créer un nouveau covoiturage.", creer...),
			subcommand(SubModifier, "Modifier un covoiturage.", modifier...),
			subcommand("m", "Modifier un covoiturage.", modifier...),
			subcommand(SubListe, "Lister les covoiturages existant.", liste...),
			subcommand("l", "Lister les covoiturages existant.", liste...),
			subcommand(SubRejoindre, "Rejoindre un covoiturage.", rejoindre...),
			subcommand("r", "Rejoindre un covoiturage.", rejoindre...),
			subcommand(SubQuitter, "Quitter un covoiturage.", idOption()),
			subcommand("q", "Quitter un covoiturage.", idOption()),
			subcommand(SubSupprimer, "Supprimer un covoiturage.", idOption()),
			subcommand("s", "Supprimer un covoiturage.", idOption()),
			subcommand(SubRang, "Vérifier votre rang.", invisibleOption()),
			subcommand(SubClassement, "Montre le rang des gens les mieux classés.", invisibleOption()),
		},
	}
}

// RegisterSlashCommands registers both command groups, per guild when
// guildID is set and globally otherwise. Already-registered commands are
// tolerated.
func RegisterSlashCommands(s *discordgo.Session, guildID string) error {
	var failures []string
	for _, name := range []string{CommandCovoiturage, CommandCov} {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, commandDefinition(name))
		if err != nil {
			if isDuplicateCommandError(err) {
				log.Printf("discord: slash command %q already registered", name)
				continue
			}
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			log.Printf("discord: failed to register command %q: %v", name, err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("discord: slash command registration errors: %s", strings.Join(failures, "; "))
	}
	return nil
}

// DeleteSlashCommands removes every registered command in the scope.
func DeleteSlashCommands(s *discordgo.Session, guildID string) error {
	commands, err := s.ApplicationCommands(s.State.User.ID, guildID)
	if err != nil {
		return err
	}

	for _, cmd := range commands {
		if err := s.ApplicationCommandDelete(s.State.User.ID, guildID, cmd.ID); err != nil {
			return err
		}
	}

	return nil
}

func isDuplicateCommandError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			msg := strings.ToLower(restErr.Message.Message)
			if strings.Contains(msg, "already exists") {
				return true
			}
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "50035") && strings.Contains(msg, "already exists")
}
