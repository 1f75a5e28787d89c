package bot

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/yuft/covbot/src/carpool"
	"github.com/yuft/covbot/src/discord"
	"github.com/yuft/covbot/src/frtime"
	"github.com/yuft/covbot/src/rank"
	"github.com/yuft/covbot/src/record"
	"github.com/yuft/covbot/src/types"
)

// User-facing replies. Denials are distinct from lookup misses except for
// the owner check on ids, which deliberately reuses its own wording.
const (
	msgUnknownCarpool = "Impossible de trouver ce covoiturage"
	msgNotOwner       = "Vous n'êtes pas le créateur de ce covoiturage"
	msgAlreadyJoined  = "Vous faite déjà partie de ce covoiturage"
	msgNotJoined      = "Vous ne faites pas partie de ce covoiturage"
	msgNoSeatLeft     = "Il n'y a plus de place dans ce covoiturage"
	msgCreated        = "Votre covoiturage à bien été ajouté"
	msgModified       = "Le covoiturage à bien été modifié"
	msgJoined         = "Vous avez été ajouté au covoiturage"
	msgLeft           = "Vous avez quitté le covoiturage"
	msgDeleted        = "Le covoiturage à bien été supprimé"
	msgInternalError  = "**ERREUR**: Une erreur interne est survenue, réessayez plus tard"
)

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	m := make(options, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func (o options) str(name string) (string, bool) {
	if opt, ok := o[name]; ok {
		return opt.StringValue(), true
	}
	return "", false
}

func (o options) integer(name string) (int, bool) {
	if opt, ok := o[name]; ok {
		return int(opt.IntValue()), true
	}
	return 0, false
}

func (o options) boolean(name string, def bool) bool {
	if opt, ok := o[name]; ok {
		return opt.BoolValue()
	}
	return def
}

func callerMention(i *discordgo.InteractionCreate) (types.Mention, bool) {
	user := i.User
	if i.Member != nil {
		user = i.Member.User
	}
	if user == nil {
		return 0, false
	}
	id, err := strconv.ParseUint(user.ID, 10, 64)
	if err != nil {
		return 0, false
	}
	return types.Mention(id), true
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate, cmd discordgo.ApplicationCommandInteractionData) {
	if len(cmd.Options) == 0 {
		return
	}
	sub := cmd.Options[0]
	name := discord.CanonicalSub(sub.Name)
	opts := optionMap(sub.Options)

	caller, ok := callerMention(i)
	if !ok {
		log.Printf("bot: interaction without resolvable caller")
		return
	}

	ephemeral := opts.boolean("invisible", true)

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: responseFlags(ephemeral)},
	}); err != nil {
		log.Printf("bot: failed to acknowledge %s: %v", name, err)
		return
	}

	var msg string
	switch name {
	case discord.SubCreer:
		msg = b.creer(caller, opts)
	case discord.SubModifier:
		msg = b.modifier(i, caller, opts)
	case discord.SubListe:
		msg = b.liste(opts)
	case discord.SubRejoindre:
		msg = b.rejoindre(i, caller, opts)
	case discord.SubQuitter:
		msg = b.quitter(caller, opts)
	case discord.SubSupprimer:
		msg = b.supprimer(i, caller, opts)
	case discord.SubRang:
		msg = b.rang(caller)
	case discord.SubClassement:
		msg = b.classement()
	default:
		return
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &msg}); err != nil {
		log.Printf("bot: failed to reply to %s: %v", name, err)
	}
}

func responseFlags(ephemeral bool) discordgo.MessageFlags {
	if ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

// resolveCarpool turns a typed id into a listing. Leading zeroes are
// normalized away through integer parsing, exactly like the store assigns
// ids.
func (b *Bot) resolveCarpool(raw string) (*carpool.Carpool, string) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, msgUnknownCarpool
	}

	c, err := b.cfg.Carpools.FetchByID(b.ctx, strconv.FormatUint(id, 10))
	if errors.Is(err, record.ErrNotFound) {
		return nil, msgUnknownCarpool
	}
	if err != nil {
		log.Printf("bot: carpool lookup failed: %v", err)
		return nil, msgInternalError
	}
	return c, ""
}

func (b *Bot) creer(caller types.Mention, opts options) string {
	jour, _ := opts.str("jour")
	heure, _ := opts.str("heure")

	day, err := frtime.ParseDate(jour, b.now())
	if err != nil {
		return err.Error()
	}
	clock, err := frtime.ParseTime(heure)
	if err != nil {
		return err.Error()
	}
	date := types.At(day.Add(clock))

	departure, _ := opts.str("lieu_depart")
	arrival, _ := opts.str("lieu_arrivee")
	distance, _ := opts.str("distance")
	duration, _ := opts.str("duree")
	seats, _ := opts.integer("places")

	c, err := b.cfg.Carpools.Create(b.ctx, caller, date, departure, arrival, distance, duration, seats)
	if err != nil {
		log.Printf("bot: create carpool failed: %v", err)
		return msgInternalError
	}

	b.bumpRank(caller, +1, 0)
	b.publish("created", c, caller)
	return msgCreated
}

func (b *Bot) modifier(i *discordgo.InteractionCreate, caller types.Mention, opts options) string {
	raw, _ := opts.str("id")
	c, denial := b.resolveCarpool(raw)
	if denial != "" {
		return denial
	}
	if c.Owner != caller {
		return msgNotOwner
	}

	edit, errMsg := b.parseEdit(opts)
	if errMsg != "" {
		return errMsg
	}

	changelog, timeChanged := applyEdit(c, edit)
	if err := b.cfg.Carpools.Save(b.ctx, c); err != nil {
		log.Printf("bot: save carpool %s failed: %v", c.ID, err)
		return msgInternalError
	}

	if timeChanged {
		if err := b.rescheduleReminders(c); err != nil {
			log.Printf("bot: rescheduling reminders for %s failed: %v", c.ID, err)
		}
	}

	b.publish("modified", c, caller)

	if len(c.Joiners) > 0 {
		notice := ":warning: Un covoiturage auquel vous faite partie à été modifié\n" + strings.Join(changelog, "\n")
		discord.Dispatch(b.ctx, b.cfg.Session, c.Joiners, i.ChannelID, notice)
	}
	return msgModified
}

// parseEdit collects the optional trip options of modifier.
func (b *Bot) parseEdit(opts options) (tripEdit, string) {
	var edit tripEdit

	if jour, ok := opts.str("jour"); ok {
		day, err := frtime.ParseDate(jour, b.now())
		if err != nil {
			return tripEdit{}, err.Error()
		}
		edit.Day = &day
	}
	if heure, ok := opts.str("heure"); ok {
		clock, err := frtime.ParseTime(heure)
		if err != nil {
			return tripEdit{}, err.Error()
		}
		edit.Clock = &clock
	}
	if v, ok := opts.str("lieu_depart"); ok {
		edit.Departure = &v
	}
	if v, ok := opts.str("lieu_arrivee"); ok {
		edit.Arrival = &v
	}
	if v, ok := opts.str("distance"); ok {
		edit.Distance = &v
	}
	if v, ok := opts.str("duree"); ok {
		edit.Duration = &v
	}
	if v, ok := opts.integer("places"); ok {
		edit.Seats = &v
	}
	return edit, ""
}

// rescheduleReminders recreates every reminder sourced by c against its new
// departure time, preserving each reminder's own lead time.
func (b *Bot) rescheduleReminders(c *carpool.Carpool) error {
	reminders, err := b.cfg.Reminders.FetchAll(b.ctx, 0)
	if err != nil {
		return err
	}

	for _, r := range reminders {
		if r.Source.ID != c.ID {
			continue
		}
		if err := b.cfg.Reminders.Delete(b.ctx, r); err != nil {
			log.Printf("bot: delete reminder %s failed: %v", r.ID, err)
			continue
		}

		lead := r.Event - r.Remind
		if _, err := b.cfg.Reminders.Create(b.ctx, c.Date, c.Date-lead, r.User, r.Fallback, c); err != nil {
			log.Printf("bot: recreate reminder for %s failed: %v", c.ID, err)
		}
	}
	return nil
}

func (b *Bot) liste(opts options) string {
	entries, err := b.cfg.Carpools.FetchAll(b.ctx, 0)
	if err != nil {
		log.Printf("bot: list carpools failed: %v", err)
		return msgInternalError
	}
	return RenderList(entries, opts.boolean("ids_longs", false))
}

func (b *Bot) rejoindre(i *discordgo.InteractionCreate, caller types.Mention, opts options) string {
	raw, _ := opts.str("id")
	c, denial := b.resolveCarpool(raw)
	if denial != "" {
		return denial
	}
	if c.Joined(caller) {
		return msgAlreadyJoined
	}
	if c.Full() {
		return msgNoSeatLeft
	}

	c.Join(caller)
	if err := b.cfg.Carpools.Save(b.ctx, c); err != nil {
		log.Printf("bot: save carpool %s failed: %v", c.ID, err)
		return msgInternalError
	}

	if rappel, ok := opts.integer("rappel"); ok {
		remind := c.Date - types.Timestamp(rappel*60)
		fallback := channelMention(i.ChannelID)
		if _, err := b.cfg.Reminders.Create(b.ctx, c.Date, remind, caller, fallback, c); err != nil {
			log.Printf("bot: create reminder for %s failed: %v", c.ID, err)
		}
	}

	b.bumpRank(caller, 0, +1)
	b.publish("joined", c, caller)
	return msgJoined
}

func (b *Bot) quitter(caller types.Mention, opts options) string {
	raw, _ := opts.str("id")
	c, denial := b.resolveCarpool(raw)
	if denial != "" {
		return denial
	}
	if !c.Joined(caller) {
		return msgNotJoined
	}

	c.Leave(caller)
	if err := b.cfg.Carpools.Save(b.ctx, c); err != nil {
		log.Printf("bot: save carpool %s failed: %v", c.ID, err)
		return msgInternalError
	}

	if err := b.deleteRemindersFor(c); err != nil {
		log.Printf("bot: deleting reminders for %s failed: %v", c.ID, err)
	}

	b.bumpRank(caller, 0, -1)
	b.publish("left", c, caller)
	return msgLeft
}

func (b *Bot) supprimer(i *discordgo.InteractionCreate, caller types.Mention, opts options) string {
	raw, _ := opts.str("id")
	c, denial := b.resolveCarpool(raw)
	if denial != "" {
		return denial
	}
	if c.Owner != caller {
		return msgNotOwner
	}

	joiners, err := b.cfg.Carpools.Delete(b.ctx, c)
	if err != nil {
		log.Printf("bot: delete carpool %s failed: %v", c.ID, err)
		return msgInternalError
	}

	if err := b.deleteRemindersFor(c); err != nil {
		log.Printf("bot: deleting reminders for %s failed: %v", c.ID, err)
	}

	b.bumpRank(caller, -1, 0)
	b.publish("deleted", c, caller)

	if len(joiners) > 0 {
		discord.Dispatch(b.ctx, b.cfg.Session, joiners, i.ChannelID,
			":warning: Un covoiturage que vous aviez réservé à été supprimé")
	}
	return msgDeleted
}

func (b *Bot) rang(caller types.Mention) string {
	ranks, err := b.cfg.Ranks.FetchAll(b.ctx, 0)
	if err != nil {
		log.Printf("bot: list ranks failed: %v", err)
		return msgInternalError
	}
	rank.SortByScore(ranks)
	position := rank.Position(ranks, caller)

	r, err := b.cfg.Ranks.Get(b.ctx, caller)
	if err != nil {
		log.Printf("bot: rank lookup failed: %v", err)
		return msgInternalError
	}
	return RenderRank(position, r)
}

func (b *Bot) classement() string {
	ranks, err := b.cfg.Ranks.FetchAll(b.ctx, 0)
	if err != nil {
		log.Printf("bot: list ranks failed: %v", err)
		return msgInternalError
	}
	rank.SortByScore(ranks)
	return RenderLeaderboard(ranks)
}

// deleteRemindersFor cancels every reminder sourced by c, whoever created
// it.
func (b *Bot) deleteRemindersFor(c *carpool.Carpool) error {
	reminders, err := b.cfg.Reminders.FetchAll(b.ctx, 0)
	if err != nil {
		return err
	}
	for _, r := range reminders {
		if r.Source.ID != c.ID {
			continue
		}
		if err := b.cfg.Reminders.Delete(b.ctx, r); err != nil {
			log.Printf("bot: delete reminder %s failed: %v", r.ID, err)
		}
	}
	return nil
}

func (b *Bot) bumpRank(owner types.Mention, proposed, participated int) {
	r, err := b.cfg.Ranks.Get(b.ctx, owner)
	if err != nil {
		log.Printf("bot: rank lookup for %s failed: %v", owner, err)
		return
	}
	r.Proposed += proposed
	r.Participated += participated
	if err := b.cfg.Ranks.Save(b.ctx, r); err != nil {
		log.Printf("bot: rank save for %s failed: %v", owner, err)
	}
}

func (b *Bot) publish(kind string, c *carpool.Carpool, actor types.Mention) {
	b.cfg.Events.Publish(b.ctx, kind, map[string]interface{}{
		"carpool": c.ID,
		"actor":   actor.String(),
	})
}

func channelMention(channelID string) types.Channel {
	id, err := strconv.ParseUint(channelID, 10, 64)
	if err != nil {
		return 0
	}
	return types.Channel(id)
}

// handleAutocomplete offers full carpool ids matching what the user typed
// so far, filtered to the listings the pending command could act on.
func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, cmd discordgo.ApplicationCommandInteractionData) {
	if len(cmd.Options) == 0 {
		return
	}
	sub := cmd.Options[0]
	name := discord.CanonicalSub(sub.Name)

	var typed string
	for _, o := range sub.Options {
		if o.Focused && o.Name == "id" {
			typed = fmt.Sprint(o.Value)
			break
		}
	}

	caller, ok := callerMention(i)
	if !ok {
		return
	}

	entries, err := b.cfg.Carpools.FetchAll(b.ctx, 0)
	if err != nil {
		log.Printf("bot: autocomplete fetch failed: %v", err)
		return
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, c := range entries {
		if !strings.Contains(c.ID, typed) || !eligible(name, c, caller) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: c.ID, Value: c.ID})
		if len(choices) == 25 {
			break
		}
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	}); err != nil {
		log.Printf("bot: autocomplete reply failed: %v", err)
	}
}

func eligible(command string, c *carpool.Carpool, caller types.Mention) bool {
	switch command {
	case discord.SubModifier, discord.SubSupprimer:
		return c.Owner == caller
	case discord.SubRejoindre:
		return !c.Joined(caller)
	case discord.SubQuitter:
		return c.Joined(caller)
	}
	return true
}
