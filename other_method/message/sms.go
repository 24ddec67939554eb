package message

import (
	"fmt"
	"log"
	"os"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi20170525 "github.com/alibabacloud-go/dysmsapi-20170525/v5/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"

	"smartstore_report/config"
)

// CreateClient 创建短信客户端，凭证从环境变量获取
func CreateClient() (_result *dysmsapi20170525.Client, _err error) {
	accessKeyID := os.Getenv("ALIYUN_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("ALIYUN_ACCESS_KEY_SECRET")
	if accessKeyID == "" || accessKeySecret == "" {
		return nil, fmt.Errorf("未配置短信服务凭证（ALIYUN_ACCESS_KEY_ID/ALIYUN_ACCESS_KEY_SECRET）")
	}

	clientConfig := &openapi.Config{
		AccessKeyId:     tea.String(accessKeyID),
		AccessKeySecret: tea.String(accessKeySecret),
	}
	// Endpoint 请参考 https://api.aliyun.com/product/Dysmsapi
	clientConfig.Endpoint = tea.String("dysmsapi.aliyuncs.com")
	_result, _err = dysmsapi20170525.NewClient(clientConfig)
	return _result, _err
}

// SendFinalizeReport 发送收尾完成通知短信
// 模板参数为통합/원본보관/리포트보관三个数量，未启用短信时直接跳过
func SendFinalizeReport(cfg config.Config, consolidated, sourcesArchived, reportsArchived int) {
	if !cfg.SMS.Enabled || cfg.SMS.PhoneNumber == "" {
		return
	}

	client, err := CreateClient()
	if err != nil {
		log.Printf("创建短信客户端失败: %v", err)
		return
	}

	templateParam := fmt.Sprintf("{\"consolidated\":\"%d\",\"sources\":\"%d\",\"reports\":\"%d\"}",
		consolidated, sourcesArchived, reportsArchived)

	sendSmsRequest := &dysmsapi20170525.SendSmsRequest{
		PhoneNumbers:  tea.String(cfg.SMS.PhoneNumber),
		SignName:      tea.String(cfg.SMS.SignName),
		TemplateCode:  tea.String(cfg.SMS.TemplateCode),
		TemplateParam: tea.String(templateParam),
	}
	runtime := &util.RuntimeOptions{}

	resp, err := client.SendSmsWithOptions(sendSmsRequest, runtime)
	if err != nil {
		var sdkError = &tea.SDKError{}
		if _t, ok := err.(*tea.SDKError); ok {
			sdkError = _t
		} else {
			sdkError.Message = tea.String(err.Error())
		}
		log.Printf("发送收尾通知短信失败: %s", tea.StringValue(sdkError.Message))
		return
	}

	log.Printf("收尾通知短信已发送: %s", tea.StringValue(util.ToJSONString(resp)))
}
